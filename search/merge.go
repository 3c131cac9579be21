package search

import (
	"sort"

	"sangamtransport/models"
)

// MergeByRecency sorts merged rows strictly descending by effective timestamp
// (created_at when present, bilty_date otherwise). The sort is stable so rows
// with equal timestamps keep their concatenation order: regular before
// station.
func MergeByRecency(rows []models.Consignment) []models.Consignment {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}
