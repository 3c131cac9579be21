package repository

import (
	"sangamtransport/models"
)

// SearchBatchSize caps a single source query; a full batch means more rows
// may be available and the caller offers a "load more" offset fetch.
const SearchBatchSize = 5000

type BiltyRepository interface {
	// SearchRegular applies the populated filter predicates server-side.
	// cityIDs is the pre-resolved city filter; nil means no city filter was
	// given (an empty non-nil slice never reaches the repo, the service
	// short-circuits it).
	SearchRegular(f models.BiltySearchFilters, cityIDs []int64, limit int) ([]*models.Bilty, error)

	// SearchStation mirrors SearchRegular for the station table. cityCodes
	// carries resolved city codes; stationFallback is matched as a substring
	// against the station column when the city lookup found nothing.
	SearchStation(f models.BiltySearchFilters, cityCodes []string, stationFallback string, limit int) ([]*models.StationBilty, error)

	GetRegularByIDs(ids []int64) ([]*models.Bilty, error)
	GetStationByIDs(ids []int64) ([]*models.StationBilty, error)

	// GR-number fetches back the challan manifest, whose transit rows carry
	// GR numbers rather than row ids.
	GetRegularByGRNos(grNos []int64) ([]*models.Bilty, error)
	GetStationByGRNos(grNos []int64) ([]*models.StationBilty, error)

	// Godown views: consignments booked to a branch and not yet delivered.
	RegularPendingAtBranch(branchID int64) ([]*models.Bilty, error)
	StationPendingAtStation(code string) ([]*models.StationBilty, error)

	CreateStationBilty(s *models.StationBilty) error
	UpdateImageURL(t models.ConsignmentType, id int64, url string) error
}
