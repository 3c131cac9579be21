package repository

import (
	"database/sql"
	"time"

	"sangamtransport/models"
)

type PostgresBillRepo struct {
	DB *sql.DB
}

func NewPostgresBillRepo(db *sql.DB) *PostgresBillRepo {
	return &PostgresBillRepo{DB: db}
}

func (r *PostgresBillRepo) InsertBill(b *models.MonthlyBill) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO monthly_bill(
			bill_type, custom_name, date_from, date_to, row_count,
			total_amount, paid_amount, to_pay_amount, pdf_url, created_by, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`, b.BillType, b.CustomName, b.DateFrom, b.DateTo, b.RowCount,
		b.TotalAmount, b.PaidAmount, b.ToPayAmount, b.PDFURL, b.CreatedBy, b.CreatedAt,
	).Scan(&b.ID)
}

func (r *PostgresBillRepo) ListBillsByUser(userID int64) ([]*models.MonthlyBill, error) {
	rows, err := r.DB.Query(`
		SELECT id, bill_type, custom_name, date_from, date_to, row_count,
		       total_amount, paid_amount, to_pay_amount, pdf_url, created_by, created_at
		FROM monthly_bill
		WHERE created_by = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.MonthlyBill
	for rows.Next() {
		var b models.MonthlyBill
		err := rows.Scan(
			&b.ID, &b.BillType, &b.CustomName, &b.DateFrom, &b.DateTo, &b.RowCount,
			&b.TotalAmount, &b.PaidAmount, &b.ToPayAmount, &b.PDFURL, &b.CreatedBy, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}
