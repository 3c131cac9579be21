package search

import (
	"testing"
	"time"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeByRecencySortsDescending(t *testing.T) {
	rows := []models.Consignment{
		{GRNo: 1, Date: day(2)},
		{GRNo: 2, Date: day(9)},
		{GRNo: 3, Date: day(5)},
	}

	merged := MergeByRecency(rows)

	assert.Equal(t, int64(2), merged[0].GRNo)
	assert.Equal(t, int64(3), merged[1].GRNo)
	assert.Equal(t, int64(1), merged[2].GRNo)
}

// Equal timestamps must preserve input order across repeated merges, so a
// re-render never shuffles visually identical rows.
func TestMergeByRecencyIsStable(t *testing.T) {
	same := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Consignment{
		{GRNo: 1, Type: models.ConsignmentRegular, Date: same},
		{GRNo: 2, Type: models.ConsignmentRegular, Date: same},
		{GRNo: 3, Type: models.ConsignmentStation, Date: same},
	}

	merged := MergeByRecency(rows)
	again := MergeByRecency(merged)

	for i, c := range merged {
		assert.Equal(t, int64(i+1), c.GRNo)
		assert.Equal(t, c.GRNo, again[i].GRNo)
	}
}
