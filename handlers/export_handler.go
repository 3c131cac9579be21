package handlers

import (
	"net/http"

	"sangamtransport/models"
	"sangamtransport/repository"
	"sangamtransport/search"
	"sangamtransport/selection"
	"sangamtransport/utils"
)

// ExportHandler serves the selection working set as CSV or clipboard text.
// Exports are restricted to admin accounts; the generators stay callable from
// other code paths regardless.
type ExportHandler struct {
	Users   repository.UserRepository
	Store   *selection.Store
	Service *search.Service
}

func (h *ExportHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return false
	}
	user, err := h.Users.GetUserByEmail(email)
	if err != nil || user == nil {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return false
	}
	if user.Role != "admin" {
		writeError(w, http.StatusForbidden, "export is disabled for this account, contact administrator")
		return false
	}
	return true
}

func (h *ExportHandler) selectedRows(w http.ResponseWriter, r *http.Request) ([]models.Consignment, bool) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return nil, false
	}
	keys, err := h.Store.Get(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read selection: "+err.Error())
		return nil, false
	}
	if len(keys) == 0 {
		writeError(w, http.StatusBadRequest, "no consignments selected")
		return nil, false
	}
	rows, _, err := h.Service.SelectedConsignments(keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load consignments: "+err.Error())
		return nil, false
	}
	return rows, true
}

// ExportCSV streams the selection as a CSV attachment.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	rows, ok := h.selectedRows(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="consignments.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(utils.ConsignmentsCSV(rows)))
}

// ExportClipboard returns the selection as tab-separated text in the JSON
// envelope, ready for the client to place on the clipboard.
func (h *ExportHandler) ExportClipboard(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	rows, ok := h.selectedRows(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"text": utils.ConsignmentsClipboard(rows),
		"rows": len(rows),
	}})
}
