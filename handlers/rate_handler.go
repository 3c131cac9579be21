package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sangamtransport/models"
	"sangamtransport/rates"
	"sangamtransport/repository"
)

type RateHandler struct {
	Repo repository.RateRepository
}

func (h *RateHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListActiveRates()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rates: "+err.Error())
		return
	}
	if list == nil {
		list = []*models.TransportHubRate{}
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func validatePricingMode(mode string) bool {
	switch mode {
	case models.PricingPerKG, models.PricingPerPkg, models.PricingHybrid:
		return true
	}
	return false
}

func (h *RateHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var rate models.TransportHubRate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if rate.TransportID == 0 || rate.DestCityID == 0 {
		writeError(w, http.StatusBadRequest, "transport_id and dest_city_id are required")
		return
	}
	if !validatePricingMode(rate.PricingMode) {
		writeError(w, http.StatusBadRequest, "pricing_mode must be per-kg, per-pkg or hybrid")
		return
	}
	rate.IsActive = true

	if err := h.Repo.CreateRate(&rate); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create rate: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: rate})
}

func (h *RateHandler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	var rate models.TransportHubRate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if rate.ID == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if !validatePricingMode(rate.PricingMode) {
		writeError(w, http.StatusBadRequest, "pricing_mode must be per-kg, per-pkg or hybrid")
		return
	}

	if err := h.Repo.UpdateRate(&rate); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update rate: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: rate})
}

// DeleteRate deactivates a rate. History stays queryable for old challans.
func (h *RateHandler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid id")
		return
	}
	if err := h.Repo.DeactivateRate(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to deactivate rate: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Rate deactivated"})
}

// QuoteRate prices a prospective consignment against the matching hub rate.
func (h *RateHandler) QuoteRate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	transportID, err := strconv.ParseInt(q.Get("transport_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid transport_id")
		return
	}
	destCityID, err := strconv.ParseInt(q.Get("dest_city_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid dest_city_id")
		return
	}
	weight, err := strconv.ParseFloat(q.Get("weight_kg"), 64)
	if err != nil || weight < 0 {
		writeError(w, http.StatusBadRequest, "missing or invalid weight_kg")
		return
	}
	packets, err := strconv.Atoi(q.Get("packets"))
	if err != nil || packets < 0 {
		writeError(w, http.StatusBadRequest, "missing or invalid packets")
		return
	}
	goodsType := q.Get("goods_type")

	rate, err := h.Repo.FindRate(transportID, destCityID, goodsType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "rate lookup failed: "+err.Error())
		return
	}
	if rate == nil {
		writeError(w, http.StatusNotFound, "no active rate for this transport and destination")
		return
	}

	charge := rates.ComputeCharge(rate, weight, packets)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"rate":   rate,
		"charge": charge,
	}})
}
