package models

import "time"

// MonthlyBill records a generated bill PDF: the totals, the filter window it
// was built from and the public URL of the stored file.
type MonthlyBill struct {
	ID          int64      `json:"id" db:"id" bson:"_id,omitempty"`
	BillType    string     `json:"bill_type" db:"bill_type" bson:"bill_type"`
	CustomName  *string    `json:"custom_name,omitempty" db:"custom_name" bson:"custom_name,omitempty"`
	DateFrom    *time.Time `json:"date_from,omitempty" db:"date_from" bson:"date_from,omitempty"`
	DateTo      *time.Time `json:"date_to,omitempty" db:"date_to" bson:"date_to,omitempty"`
	RowCount    int        `json:"row_count" db:"row_count" bson:"row_count"`
	TotalAmount float64    `json:"total_amount" db:"total_amount" bson:"total_amount"`
	PaidAmount  float64    `json:"paid_amount" db:"paid_amount" bson:"paid_amount"`
	ToPayAmount float64    `json:"to_pay_amount" db:"to_pay_amount" bson:"to_pay_amount"`
	PDFURL      string     `json:"pdf_url" db:"pdf_url" bson:"pdf_url"`
	CreatedBy   int64      `json:"created_by" db:"created_by" bson:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" bson:"created_at"`
}
