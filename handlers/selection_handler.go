package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sangamtransport/models"
	"sangamtransport/search"
	"sangamtransport/selection"
)

type SelectionHandler struct {
	Store   *selection.Store
	Service *search.Service
}

type selectionRequest struct {
	UserID int64                   `json:"user_id"`
	Op     string                  `json:"op"` // add | remove | toggle | clear
	Keys   []models.ConsignmentKey `json:"keys,omitempty"`
}

// GetSelection returns the stored working set; with resolve=true the full
// consignment rows are loaded alongside the keys.
func (h *SelectionHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid user_id")
		return
	}

	keys, err := h.Store.Get(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read selection: "+err.Error())
		return
	}

	data := map[string]interface{}{"keys": keys}
	if r.URL.Query().Get("resolve") == "true" {
		rows, warnings, err := h.Service.SelectedConsignments(keys)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load selected consignments: "+err.Error())
			return
		}
		data["rows"] = rows
		if len(warnings) > 0 {
			data["warnings"] = warnings
		}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: data})
}

// UpdateSelection applies one mutation to the working set. Add and remove
// accept multiple keys, so they double as the bulk operations.
func (h *SelectionHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var keys []models.ConsignmentKey
	var err error
	switch req.Op {
	case "add":
		keys, err = h.Store.Add(req.UserID, req.Keys...)
	case "remove":
		keys, err = h.Store.Remove(req.UserID, req.Keys...)
	case "toggle":
		if len(req.Keys) != 1 {
			writeError(w, http.StatusBadRequest, "toggle expects exactly one key")
			return
		}
		keys, err = h.Store.Toggle(req.UserID, req.Keys[0])
	case "clear":
		err = h.Store.Clear(req.UserID)
		keys = []models.ConsignmentKey{}
	default:
		writeError(w, http.StatusBadRequest, "unknown op: "+req.Op)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "selection update failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{"keys": keys}})
}
