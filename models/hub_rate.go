package models

import "time"

// Pricing modes for a transport hub rate.
const (
	PricingPerKG  = "per-kg"
	PricingPerPkg = "per-pkg"
	PricingHybrid = "hybrid"
)

// TransportHubRate ("kaat") is a negotiated rate keyed by transport,
// destination city and goods type. Rows are soft-deleted via IsActive.
type TransportHubRate struct {
	ID           int64      `json:"id" db:"id" bson:"_id,omitempty"`
	TransportID  int64      `json:"transport_id" db:"transport_id" bson:"transport_id"`
	DestCityID   int64      `json:"dest_city_id" db:"dest_city_id" bson:"dest_city_id"`
	GoodsType    string     `json:"goods_type" db:"goods_type" bson:"goods_type"`
	PricingMode  string     `json:"pricing_mode" db:"pricing_mode" bson:"pricing_mode"`
	RatePerKG    float64    `json:"rate_per_kg" db:"rate_per_kg" bson:"rate_per_kg"`
	RatePerPkg   float64    `json:"rate_per_pkg" db:"rate_per_pkg" bson:"rate_per_pkg"`
	MinCharge    float64    `json:"min_charge" db:"min_charge" bson:"min_charge"`
	HamaliPerPkt float64    `json:"hamali_per_pkt" db:"hamali_per_pkt" bson:"hamali_per_pkt"`
	DDCharge     float64    `json:"dd_charge" db:"dd_charge" bson:"dd_charge"`
	IsActive     bool       `json:"is_active" db:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at" bson:"updated_at,omitempty"`

	Transport *Transport `json:"transport,omitempty" bson:"-"`
	DestCity  *City      `json:"dest_city,omitempty" bson:"-"`
}
