package handlers

import (
	"net/http"

	"sangamtransport/repository"
)

// LookupHandler serves the reference lists the booking and challan forms need.
type LookupHandler struct {
	Repo repository.LookupRepository
}

func (h *LookupHandler) Cities(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		cities, err := h.Repo.FindCitiesByName(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "city lookup failed: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: cities})
		return
	}
	cities, err := h.Repo.AllCities()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "city lookup failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: cities})
}

func (h *LookupHandler) Branches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Repo.AllBranches()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "branch lookup failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: branches})
}

func (h *LookupHandler) Transports(w http.ResponseWriter, r *http.Request) {
	transports, err := h.Repo.AllTransports()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "transport lookup failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: transports})
}

func (h *LookupHandler) Staff(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}
	staff, err := h.Repo.StaffByRole(role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "staff lookup failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: staff})
}

func (h *LookupHandler) Trucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.Repo.AllTrucks()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "truck lookup failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: trucks})
}
