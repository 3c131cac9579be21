package search

import (
	"math"

	"sangamtransport/models"
)

// Pagination contains metadata for a client-side page window over an
// already-fetched result set.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata with the usual clamps.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Page slices one page window out of rows. Slicing is pure: the same
// (page, perPage) over the same rows always yields the same window, and no
// re-fetch is involved.
func Page(rows []models.Consignment, page, perPage int) ([]models.Consignment, Pagination) {
	p := NewPagination(page, perPage, len(rows))
	start := (p.Page - 1) * p.PerPage
	if start >= len(rows) {
		return []models.Consignment{}, p
	}
	end := start + p.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], p
}
