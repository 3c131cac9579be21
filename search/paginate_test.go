package search

import (
	"testing"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consignments(n int) []models.Consignment {
	rows := make([]models.Consignment, n)
	for i := range rows {
		rows[i] = models.Consignment{ID: int64(i + 1), Type: models.ConsignmentRegular, GRNo: int64(100 + i)}
	}
	return rows
}

func TestPageDefaultsAndClamps(t *testing.T) {
	rows := consignments(45)

	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLen    int
		wantPage   int
		wantPer    int
		wantPages  int
		wantFirst  int64
	}{
		{"defaults", 0, 0, 20, 1, 20, 3, 1},
		{"second page", 2, 20, 20, 2, 20, 3, 21},
		{"last partial page", 3, 20, 5, 3, 20, 3, 41},
		{"past the end", 9, 20, 0, 9, 20, 3, 0},
		{"negative inputs clamp", -3, -10, 20, 1, 20, 3, 1},
		{"small page size", 1, 7, 7, 1, 7, 7, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, p := Page(rows, tc.page, tc.perPage)
			assert.Len(t, got, tc.wantLen)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantPer, p.PerPage)
			assert.Equal(t, 45, p.Total)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			if tc.wantLen > 0 {
				assert.Equal(t, tc.wantFirst, got[0].ID)
			}
		})
	}
}

// Re-slicing the same page must return the same window: pagination never
// re-fetches or reorders.
func TestPageIsIdempotent(t *testing.T) {
	rows := consignments(100)

	first, p1 := Page(rows, 3, 15)
	second, p2 := Page(rows, 3, 15)

	require.Equal(t, p1, p2)
	require.Equal(t, first, second)
}

func TestPageWindowsCoverAllRowsWithoutOverlap(t *testing.T) {
	rows := consignments(53)
	seen := map[int64]bool{}

	_, p := Page(rows, 1, 10)
	for page := 1; page <= p.TotalPages; page++ {
		window, _ := Page(rows, page, 10)
		for _, c := range window {
			assert.False(t, seen[c.ID], "row %d appeared twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, 53)
}
