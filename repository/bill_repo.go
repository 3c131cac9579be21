package repository

import "sangamtransport/models"

type BillRepository interface {
	InsertBill(b *models.MonthlyBill) error
	ListBillsByUser(userID int64) ([]*models.MonthlyBill, error)
}
