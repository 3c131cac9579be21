package repository

import (
	"time"

	"sangamtransport/models"
)

type ChallanRepository interface {
	CreateChallan(c *models.Challan) error
	ListChallans(limit, offset int) ([]*models.Challan, error)
	GetChallanByID(id int64) (*models.Challan, error)
	MarkDispatched(id int64, date time.Time) error

	AddTransitDetail(d *models.TransitDetail) error
	TransitByChallan(challanID int64) ([]models.TransitDetail, error)
	UpdateTransitFlags(id int64, outForDelivery, deliveredAtBranch, deliveredAtDestination *bool) error

	// DispatchInfoByGR resolves GR numbers to the challan that carried them,
	// for search-row enrichment. Missing GRs are simply absent from the map.
	DispatchInfoByGR(grNos []int64) (map[int64]models.DispatchInfo, error)
}
