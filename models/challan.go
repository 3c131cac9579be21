package models

import "time"

// Challan is the manifest for one truck trip between branches.
type Challan struct {
	ID           int64      `json:"id" db:"id" bson:"_id,omitempty"`
	ChallanNo    string     `json:"challan_no" db:"challan_no" bson:"challan_no"`
	TruckID      int64      `json:"truck_id" db:"truck_id" bson:"truck_id"`
	OwnerID      *int64     `json:"owner_id,omitempty" db:"owner_id" bson:"owner_id,omitempty"`
	DriverID     *int64     `json:"driver_id,omitempty" db:"driver_id" bson:"driver_id,omitempty"`
	BranchID     int64      `json:"branch_id" db:"branch_id" bson:"branch_id"`
	TotalWeight  float64    `json:"total_weight" db:"total_weight" bson:"total_weight"`
	IsDispatched bool       `json:"is_dispatched" db:"is_dispatched" bson:"is_dispatched"`
	DispatchDate *time.Time `json:"dispatch_date,omitempty" db:"dispatch_date" bson:"dispatch_date,omitempty"`
	Remarks      *string    `json:"remarks,omitempty" db:"remarks" bson:"remarks,omitempty"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" bson:"created_at"`

	// Nested objects for responses (denormalized)
	Truck          *Truck          `json:"truck,omitempty" bson:"-"`
	Owner          *Staff          `json:"owner,omitempty" bson:"-"`
	Driver         *Staff          `json:"driver,omitempty" bson:"-"`
	Branch         *Branch         `json:"branch,omitempty" bson:"-"`
	TransitDetails []TransitDetail `json:"transit_details,omitempty" bson:"-"`
}

// TransitDetail links a challan to one GR number and tracks the delivery
// stages of that consignment.
type TransitDetail struct {
	ID                     int64      `json:"id" db:"id" bson:"_id,omitempty"`
	ChallanID              int64      `json:"challan_id" db:"challan_id" bson:"challan_id"`
	GRNo                   int64      `json:"gr_no" db:"gr_no" bson:"gr_no"`
	BiltyType              string     `json:"bilty_type" db:"bilty_type" bson:"bilty_type"` // regular | station
	OutForDelivery         bool       `json:"out_for_delivery" db:"out_for_delivery" bson:"out_for_delivery"`
	DeliveredAtBranch      bool       `json:"delivered_at_branch" db:"delivered_at_branch" bson:"delivered_at_branch"`
	DeliveredAtDestination bool       `json:"delivered_at_destination" db:"delivered_at_destination" bson:"delivered_at_destination"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty" db:"updated_at" bson:"updated_at,omitempty"`
}

// DispatchInfo is the enrichment result joined onto search rows by GR number.
type DispatchInfo struct {
	ChallanNo    string     `json:"challan_no"`
	DispatchDate *time.Time `json:"dispatch_date,omitempty"`
}
