package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sangamtransport/models"
	"sangamtransport/repository"
	"sangamtransport/search"
	"sangamtransport/selection"
	"sangamtransport/utils"

	"github.com/google/uuid"
)

type BillHandler struct {
	Bills     repository.BillRepository
	Lookup    repository.LookupRepository
	Store     *selection.Store
	Service   *search.Service
	SkipStore bool // set in tests to bypass R2
}

type amountOverride struct {
	Type   models.ConsignmentType `json:"type"`
	ID     int64                  `json:"id"`
	Amount float64                `json:"amount"`
}

type generateBillRequest struct {
	UserID    int64                   `json:"user_id"`
	BranchID  *int64                  `json:"branch_id,omitempty"`
	Keys      []models.ConsignmentKey `json:"keys,omitempty"` // defaults to the stored selection
	Overrides []amountOverride        `json:"overrides,omitempty"`
	Options   utils.BillOptions       `json:"options"`
	Save      bool                    `json:"save"`
}

// GenerateBill builds the monthly bill PDF from the selection working set.
// Without save it streams the PDF back; with save it uploads to R2 and
// records a monthly_bill row. Any failure aborts the whole save with a single
// message.
func (h *BillHandler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	var req generateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	keys := req.Keys
	if len(keys) == 0 {
		stored, err := h.Store.Get(req.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to read selection: "+err.Error())
			return
		}
		keys = stored
	}
	if len(keys) == 0 {
		writeError(w, http.StatusBadRequest, "no consignments selected")
		return
	}

	rows, _, err := h.Service.SelectedConsignments(keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load consignments: "+err.Error())
		return
	}

	// Print-only amount overrides; the source records are never touched.
	overrides := make(map[models.ConsignmentKey]float64, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides[models.ConsignmentKey{Type: o.Type, ID: o.ID}] = o.Amount
	}

	var branch *models.Branch
	if req.BranchID != nil {
		branch, err = h.Lookup.GetBranchByID(*req.BranchID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load branch: "+err.Error())
			return
		}
	}

	pdfBytes, totals, err := utils.GenerateBillPDF(rows, overrides, branch, req.Options)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate bill: "+err.Error())
		return
	}

	if !req.Save {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="bill.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
		return
	}

	key := fmt.Sprintf("%d/bill_%s_%s.pdf", req.UserID, time.Now().Format("20060102150405"), uuid.NewString()[:8])
	pdfURL := key
	if !h.SkipStore {
		pdfURL, err = utils.UploadToR2(utils.BucketBill, key, pdfBytes, "application/pdf")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to upload bill: "+err.Error())
			return
		}
	}

	bill := &models.MonthlyBill{
		BillType:    req.Options.BillType,
		DateFrom:    req.Options.DateFrom,
		DateTo:      req.Options.DateTo,
		RowCount:    len(rows),
		TotalAmount: totals.Total,
		PaidAmount:  totals.Paid,
		ToPayAmount: totals.ToPay,
		PDFURL:      pdfURL,
		CreatedBy:   req.UserID,
	}
	if req.Options.CustomName != "" {
		bill.CustomName = &req.Options.CustomName
	}
	if err := h.Bills.InsertBill(bill); err != nil {
		// The uploaded PDF is intentionally left in place.
		writeError(w, http.StatusInternalServerError, "failed to save bill record: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Bill saved successfully",
		Data:    bill,
	})
}

// ListBills returns the saved bills of one user, newest first.
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid user_id")
		return
	}

	bills, err := h.Bills.ListBillsByUser(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bills: "+err.Error())
		return
	}
	if bills == nil {
		bills = []*models.MonthlyBill{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: bills})
}
