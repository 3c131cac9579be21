package models

import "time"

type ConsignmentType string

const (
	ConsignmentRegular ConsignmentType = "regular"
	ConsignmentStation ConsignmentType = "station"
)

// Sentinel used when an enrichment lookup has no match.
const NotAvailable = "N/A"

// ConsignmentKey is the composite identity of a selected consignment.
// Regular and station bilties share numeric id ranges, so the type tag is
// part of the key.
type ConsignmentKey struct {
	Type ConsignmentType `json:"type"`
	ID   int64           `json:"id"`
}

// Consignment is the common read-only projection over the two bilty kinds.
// Every downstream consumer (tables, CSV export, bill PDF) works off this
// shape instead of switching on the record kind at each call site.
type Consignment struct {
	Type         ConsignmentType `json:"type"`
	ID           int64           `json:"id"`
	GRNo         int64           `json:"gr_no"`
	Date         time.Time       `json:"date"` // created_at when present, else bilty_date
	BiltyDate    time.Time       `json:"bilty_date"`
	Consignor    string          `json:"consignor"`
	Consignee    string          `json:"consignee"`
	CityID       int64           `json:"city_id,omitempty"`
	CityName     string          `json:"city_name"`
	CityCode     string          `json:"city_code"`
	WeightKG     float64         `json:"weight_kg"`
	NoOfPackets  int             `json:"no_of_packets"`
	PaymentMode  string          `json:"payment_mode"`
	PVTMarks     string          `json:"pvt_marks"`
	EWayBill     string          `json:"e_way_bill"`
	Amount       float64         `json:"amount"`
	ChallanNo    string          `json:"challan_no"`
	DispatchDate *time.Time      `json:"dispatch_date,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
}

func (c Consignment) Key() ConsignmentKey {
	return ConsignmentKey{Type: c.Type, ID: c.ID}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizeRegular projects a regular bilty onto the common shape. City and
// dispatch fields default to the N/A sentinel; enrichment fills them in when
// a lookup matches.
func NormalizeRegular(b *Bilty) Consignment {
	date := b.CreatedAt
	if date.IsZero() {
		date = b.BiltyDate
	}
	return Consignment{
		Type:        ConsignmentRegular,
		ID:          b.ID,
		GRNo:        b.GRNo,
		Date:        date,
		BiltyDate:   b.BiltyDate,
		Consignor:   b.Consignor,
		Consignee:   b.Consignee,
		CityID:      b.ToCityID,
		CityName:    NotAvailable,
		CityCode:    NotAvailable,
		WeightKG:    b.WeightKG,
		NoOfPackets: b.NoOfPackets,
		PaymentMode: b.PaymentMode,
		PVTMarks:    derefStr(b.PVTMarks),
		EWayBill:    derefStr(b.EWayBill),
		Amount:      b.Total,
		ChallanNo:   NotAvailable,
		ImageURL:    derefStr(b.ImageURL),
	}
}

// NormalizeStation projects a station bilty onto the common shape. The station
// code stands in for the destination city until enrichment resolves one.
func NormalizeStation(s *StationBilty) Consignment {
	date := s.BiltyDate
	if s.CreatedAt != nil && !s.CreatedAt.IsZero() {
		date = *s.CreatedAt
	}
	return Consignment{
		Type:        ConsignmentStation,
		ID:          s.ID,
		GRNo:        s.GRNo,
		Date:        date,
		BiltyDate:   s.BiltyDate,
		Consignor:   s.ConsignorName,
		Consignee:   s.ConsigneeName,
		CityName:    s.Station,
		CityCode:    s.Station,
		WeightKG:    s.WeightKG,
		NoOfPackets: s.NoOfPackets,
		PaymentMode: s.PaymentStatus,
		PVTMarks:    derefStr(s.PVTMarks),
		EWayBill:    derefStr(s.EWayBill),
		Amount:      s.Amount,
		ChallanNo:   NotAvailable,
		ImageURL:    derefStr(s.ImageURL),
	}
}
