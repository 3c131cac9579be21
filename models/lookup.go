package models

import "time"

// Reference entities joined by id or code into the transactional records.

type City struct {
	ID        int64     `json:"id" db:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" db:"name" bson:"name"`
	Code      string    `json:"code" db:"code" bson:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

type Branch struct {
	ID        int64     `json:"id" db:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" db:"name" bson:"name"`
	Code      string    `json:"code" db:"code" bson:"code"`
	Address   string    `json:"address" db:"address" bson:"address"`
	CityID    *int64    `json:"city_id,omitempty" db:"city_id" bson:"city_id,omitempty"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile" bson:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

type Transport struct {
	ID        int64     `json:"id" db:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" db:"name" bson:"name"`
	CityID    *int64    `json:"city_id,omitempty" db:"city_id" bson:"city_id,omitempty"`
	Mobile    *string   `json:"mobile,omitempty" db:"mobile" bson:"mobile,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

type Staff struct {
	ID        int64     `json:"id" db:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" db:"name" bson:"name"`
	Role      string    `json:"role" db:"role" bson:"role"` // owner | driver | clerk
	Mobile    *string   `json:"mobile,omitempty" db:"mobile" bson:"mobile,omitempty"`
	BranchID  *int64    `json:"branch_id,omitempty" db:"branch_id" bson:"branch_id,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

type Truck struct {
	ID        int64     `json:"id" db:"id" bson:"_id,omitempty"`
	Number    string    `json:"number" db:"number" bson:"number"`
	OwnerID   *int64    `json:"owner_id,omitempty" db:"owner_id" bson:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}
