package handlers

import (
	"net/http"
	"strconv"
	"time"

	"sangamtransport/models"
	"sangamtransport/search"
)

type SearchHandler struct {
	Service *search.Service
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func filtersFromQuery(r *http.Request) models.BiltySearchFilters {
	q := r.URL.Query()
	f := models.BiltySearchFilters{
		Consignor:   q.Get("consignor"),
		Consignee:   q.Get("consignee"),
		PVTMarks:    q.Get("pvt_marks"),
		CityName:    q.Get("city_name"),
		PaymentMode: q.Get("payment_mode"),
		EWayBill:    q.Get("e_way_bill"),
		BiltyType:   q.Get("bilty_type"),
		DateFrom:    parseDate(q.Get("date_from")),
		DateTo:      parseDate(q.Get("date_to")),
	}
	if v := q.Get("gr_no"); v != "" {
		if gr, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.GRNo = &gr
		}
	}
	if v := q.Get("offset"); v != "" {
		if off, err := strconv.Atoi(v); err == nil && off > 0 {
			f.Offset = off
		}
	}
	return f
}

// SearchBilty runs the merged bilty search and slices the requested page out
// of it.
func (h *SearchHandler) SearchBilty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	f := filtersFromQuery(r)
	result, err := h.Service.Search(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed: "+err.Error())
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	rows, pagination := search.Page(result.Rows, page, perPage)

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]interface{}{
			"rows":             rows,
			"pagination":       pagination,
			"warnings":         result.Warnings,
			"has_more_regular": result.HasMoreRegular,
			"has_more_station": result.HasMoreStation,
		},
	})
}

// GodownStock lists pending consignments at a branch.
func (h *SearchHandler) GodownStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	branchID, err := strconv.ParseInt(r.URL.Query().Get("branch_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid branch_id")
		return
	}

	result, err := h.Service.Godown(branchID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "godown fetch failed: "+err.Error())
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	rows, pagination := search.Page(result.Rows, page, perPage)

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]interface{}{
			"rows":       rows,
			"pagination": pagination,
			"warnings":   result.Warnings,
		},
	})
}
