package models

import "time"

// Bilty is a regular consignment note. Rows are created by the booking module;
// this service reads them and may attach a photo of the physical document.
type Bilty struct {
	ID          int64      `json:"id" db:"id" bson:"_id,omitempty"`
	GRNo        int64      `json:"gr_no" db:"gr_no" bson:"gr_no"`
	BiltyDate   time.Time  `json:"bilty_date" db:"bilty_date" bson:"bilty_date"`
	Consignor   string     `json:"consignor" db:"consignor" bson:"consignor"`
	Consignee   string     `json:"consignee" db:"consignee" bson:"consignee"`
	ToCityID    int64      `json:"to_city_id" db:"to_city_id" bson:"to_city_id"`
	BranchID    *int64     `json:"branch_id,omitempty" db:"branch_id" bson:"branch_id,omitempty"`
	WeightKG    float64    `json:"weight_kg" db:"weight_kg" bson:"weight_kg"`
	NoOfPackets int        `json:"no_of_packets" db:"no_of_packets" bson:"no_of_packets"`
	PaymentMode string     `json:"payment_mode" db:"payment_mode" bson:"payment_mode"` // paid | to-pay | foc
	PVTMarks    *string    `json:"pvt_marks,omitempty" db:"pvt_marks" bson:"pvt_marks,omitempty"`
	EWayBill    *string    `json:"e_way_bill,omitempty" db:"e_way_bill" bson:"e_way_bill,omitempty"`
	Total       float64    `json:"total" db:"total" bson:"total"`
	ImageURL    *string    `json:"image_url,omitempty" db:"image_url" bson:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at" bson:"updated_at,omitempty"`
}

// StationBilty is the simplified consignment summary entered manually at a
// station counter. Field names differ from Bilty on purpose: they mirror the
// station_bilty_summary table.
type StationBilty struct {
	ID            int64      `json:"id" db:"id" bson:"_id,omitempty"`
	GRNo          int64      `json:"gr_no" db:"gr_no" bson:"gr_no"`
	Station       string     `json:"station" db:"station" bson:"station"`
	ConsignorName string     `json:"consignor_name" db:"consignor_name" bson:"consignor_name"`
	ConsigneeName string     `json:"consignee_name" db:"consignee_name" bson:"consignee_name"`
	NoOfPackets   int        `json:"no_of_packets" db:"no_of_packets" bson:"no_of_packets"`
	WeightKG      float64    `json:"weight_kg" db:"weight_kg" bson:"weight_kg"`
	Amount        float64    `json:"amount" db:"amount" bson:"amount"`
	PaymentStatus string     `json:"payment_status" db:"payment_status" bson:"payment_status"`
	PVTMarks      *string    `json:"pvt_marks,omitempty" db:"pvt_marks" bson:"pvt_marks,omitempty"`
	EWayBill      *string    `json:"e_way_bill,omitempty" db:"e_way_bill" bson:"e_way_bill,omitempty"`
	BiltyDate     time.Time  `json:"bilty_date" db:"bilty_date" bson:"bilty_date"`
	ImageURL      *string    `json:"image_url,omitempty" db:"image_url" bson:"image_url,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty" db:"created_at" bson:"created_at,omitempty"`
}

// BiltySearchFilters carries the optional predicates of the bilty search.
// Absent fields impose no constraint.
type BiltySearchFilters struct {
	DateFrom    *time.Time `json:"date_from,omitempty"`
	DateTo      *time.Time `json:"date_to,omitempty"`
	GRNo        *int64     `json:"gr_no,omitempty"`
	Consignor   string     `json:"consignor,omitempty"`
	Consignee   string     `json:"consignee,omitempty"`
	PVTMarks    string     `json:"pvt_marks,omitempty"`
	CityName    string     `json:"city_name,omitempty"`
	PaymentMode string     `json:"payment_mode,omitempty"`
	EWayBill    string     `json:"e_way_bill,omitempty"`
	BiltyType   string     `json:"bilty_type,omitempty"` // all | regular | station
	Offset      int        `json:"offset,omitempty"`
}
