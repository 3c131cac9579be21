package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"sangamtransport/cache"
	"sangamtransport/models"
	"sangamtransport/repository"
	"sangamtransport/search"
	"sangamtransport/utils"
)

// Cache settings for the transit-finance landing list.
const (
	challanCacheKey = "challan_landing"
	ChallanCacheTTL = 5 * time.Minute
)

type ChallanHandler struct {
	Repo    repository.ChallanRepository
	Lookup  repository.LookupRepository
	Service *search.Service
	Cache   *cache.TTLCache
}

func (h *ChallanHandler) CreateChallan(w http.ResponseWriter, r *http.Request) {
	var challan models.Challan
	if err := json.NewDecoder(r.Body).Decode(&challan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if challan.ChallanNo == "" || challan.TruckID == 0 || challan.BranchID == 0 {
		writeError(w, http.StatusBadRequest, "challan_no, truck_id and branch_id are required")
		return
	}

	if err := h.Repo.CreateChallan(&challan); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create challan: "+err.Error())
		return
	}
	h.Cache.Invalidate(challanCacheKey)

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: challan})
}

// ListChallans serves the transit-finance landing page. The first page is
// cached for five minutes; deeper offsets always hit the database.
func (h *ChallanHandler) ListChallans(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if offset == 0 {
		value, cached, err := h.Cache.Get(challanCacheKey, func() (interface{}, error) {
			return h.Repo.ListChallans(limit, 0)
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list challans: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
			"challans": value,
			"cached":   cached,
		}})
		return
	}

	challans, err := h.Repo.ListChallans(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list challans: "+err.Error())
		return
	}
	if challans == nil {
		challans = []*models.Challan{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"challans": challans,
		"cached":   false,
	}})
}

func (h *ChallanHandler) GetChallanByID(w http.ResponseWriter, r *http.Request, id string) {
	challanID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid challan ID")
		return
	}

	challan, err := h.Repo.GetChallanByID(challanID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch challan: "+err.Error())
		return
	}
	if challan == nil {
		writeError(w, http.StatusNotFound, "Challan not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: challan})
}

func (h *ChallanHandler) DispatchChallan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           int64      `json:"id"`
		DispatchDate *time.Time `json:"dispatch_date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	date := time.Now().UTC()
	if req.DispatchDate != nil {
		date = *req.DispatchDate
	}

	if err := h.Repo.MarkDispatched(req.ID, date); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to dispatch challan: "+err.Error())
		return
	}
	h.Cache.Invalidate(challanCacheKey)

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Challan dispatched"})
}

// AddTransitDetail links a GR number into a challan.
func (h *ChallanHandler) AddTransitDetail(w http.ResponseWriter, r *http.Request) {
	var detail models.TransitDetail
	if err := json.NewDecoder(r.Body).Decode(&detail); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if detail.ChallanID == 0 || detail.GRNo == 0 {
		writeError(w, http.StatusBadRequest, "challan_id and gr_no are required")
		return
	}
	if detail.BiltyType == "" {
		detail.BiltyType = string(models.ConsignmentRegular)
	}

	if err := h.Repo.AddTransitDetail(&detail); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add transit detail: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: detail})
}

// ChallanPDF renders the trip manifest for one challan.
func (h *ChallanHandler) ChallanPDF(w http.ResponseWriter, r *http.Request) {
	challanID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}

	challan, err := h.Repo.GetChallanByID(challanID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch challan: "+err.Error())
		return
	}
	if challan == nil {
		writeError(w, http.StatusNotFound, "Challan not found")
		return
	}

	rows, _, err := h.Service.ConsignmentsForChallan(challan.TransitDetails)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load manifest rows: "+err.Error())
		return
	}

	branch, err := h.Lookup.GetBranchByID(challan.BranchID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load branch: "+err.Error())
		return
	}

	pdfBytes, err := utils.GenerateChallanPDF(challan, branch, rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate manifest: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="challan_`+challan.ChallanNo+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// UpdateTransitFlags sets the delivery-stage flags that were supplied and
// leaves the rest untouched.
func (h *ChallanHandler) UpdateTransitFlags(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID                     int64 `json:"id"`
		OutForDelivery         *bool `json:"out_for_delivery,omitempty"`
		DeliveredAtBranch      *bool `json:"delivered_at_branch,omitempty"`
		DeliveredAtDestination *bool `json:"delivered_at_destination,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.Repo.UpdateTransitFlags(req.ID, req.OutForDelivery, req.DeliveredAtBranch, req.DeliveredAtDestination)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update transit flags: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Transit flags updated"})
}
