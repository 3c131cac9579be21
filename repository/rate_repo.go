package repository

import "sangamtransport/models"

type RateRepository interface {
	ListActiveRates() ([]*models.TransportHubRate, error)
	CreateRate(r *models.TransportHubRate) error
	UpdateRate(r *models.TransportHubRate) error
	// DeactivateRate soft-deletes by clearing is_active; rows are never removed.
	DeactivateRate(id int64) error
	FindRate(transportID, destCityID int64, goodsType string) (*models.TransportHubRate, error)
}
