package repository

import "sangamtransport/models"

// LookupRepository serves the reference tables that search enrichment and the
// transit-finance forms join against. Callers build id->record maps from the
// full lists rather than issuing per-row queries.
type LookupRepository interface {
	FindCitiesByName(name string) ([]*models.City, error) // case-insensitive substring
	AllCities() ([]*models.City, error)
	AllBranches() ([]*models.Branch, error)
	GetBranchByID(id int64) (*models.Branch, error)
	AllTransports() ([]*models.Transport, error)
	StaffByRole(role string) ([]*models.Staff, error)
	AllTrucks() ([]*models.Truck, error)
}
