package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sangamtransport/models"

	"github.com/lib/pq"
)

type PostgresBiltyRepo struct {
	DB *sql.DB
}

func NewPostgresBiltyRepo(db *sql.DB) *PostgresBiltyRepo {
	return &PostgresBiltyRepo{DB: db}
}

// ------------------------ Regular bilty search ------------------------

const regularCols = `
	id, gr_no, bilty_date, consignor, consignee, to_city_id, branch_id,
	weight_kg, no_of_packets, payment_mode, pvt_marks, e_way_bill, total,
	image_url, created_at, updated_at
`

func scanBilty(rows *sql.Rows) (*models.Bilty, error) {
	var b models.Bilty
	err := rows.Scan(
		&b.ID, &b.GRNo, &b.BiltyDate, &b.Consignor, &b.Consignee, &b.ToCityID,
		&b.BranchID, &b.WeightKG, &b.NoOfPackets, &b.PaymentMode, &b.PVTMarks,
		&b.EWayBill, &b.Total, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBiltyRepo) SearchRegular(f models.BiltySearchFilters, cityIDs []int64, limit int) ([]*models.Bilty, error) {
	query := `SELECT ` + regularCols + ` FROM bilty`

	args := []interface{}{}
	where := []string{}
	i := 1
	add := func(cond string, val interface{}) {
		where = append(where, fmt.Sprintf(cond, i))
		args = append(args, val)
		i++
	}

	if f.DateFrom != nil {
		add("bilty_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("bilty_date <= $%d", *f.DateTo)
	}
	if f.GRNo != nil {
		add("gr_no = $%d", *f.GRNo)
	}
	if f.Consignor != "" {
		add("consignor ILIKE $%d", "%"+f.Consignor+"%")
	}
	if f.Consignee != "" {
		add("consignee ILIKE $%d", "%"+f.Consignee+"%")
	}
	if f.PVTMarks != "" {
		add("pvt_marks ILIKE $%d", "%"+f.PVTMarks+"%")
	}
	if f.EWayBill != "" {
		add("e_way_bill ILIKE $%d", "%"+f.EWayBill+"%")
	}
	if f.PaymentMode != "" {
		add("payment_mode = $%d", f.PaymentMode)
	}
	if cityIDs != nil {
		add("to_city_id = ANY($%d)", pq.Array(cityIDs))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, f.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Bilty
	for rows.Next() {
		b, err := scanBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// ------------------------ Station bilty search ------------------------

const stationCols = `
	id, gr_no, station, consignor_name, consignee_name, no_of_packets,
	weight_kg, amount, payment_status, pvt_marks, e_way_bill, bilty_date,
	image_url, created_at
`

func scanStationBilty(rows *sql.Rows) (*models.StationBilty, error) {
	var s models.StationBilty
	err := rows.Scan(
		&s.ID, &s.GRNo, &s.Station, &s.ConsignorName, &s.ConsigneeName,
		&s.NoOfPackets, &s.WeightKG, &s.Amount, &s.PaymentStatus, &s.PVTMarks,
		&s.EWayBill, &s.BiltyDate, &s.ImageURL, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresBiltyRepo) SearchStation(f models.BiltySearchFilters, cityCodes []string, stationFallback string, limit int) ([]*models.StationBilty, error) {
	query := `SELECT ` + stationCols + ` FROM station_bilty_summary`

	args := []interface{}{}
	where := []string{}
	i := 1
	add := func(cond string, val interface{}) {
		where = append(where, fmt.Sprintf(cond, i))
		args = append(args, val)
		i++
	}

	if f.DateFrom != nil {
		add("bilty_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("bilty_date <= $%d", *f.DateTo)
	}
	if f.GRNo != nil {
		add("gr_no = $%d", *f.GRNo)
	}
	if f.Consignor != "" {
		add("consignor_name ILIKE $%d", "%"+f.Consignor+"%")
	}
	if f.Consignee != "" {
		add("consignee_name ILIKE $%d", "%"+f.Consignee+"%")
	}
	if f.PVTMarks != "" {
		add("pvt_marks ILIKE $%d", "%"+f.PVTMarks+"%")
	}
	if f.EWayBill != "" {
		add("e_way_bill ILIKE $%d", "%"+f.EWayBill+"%")
	}
	if f.PaymentMode != "" {
		add("payment_status = $%d", f.PaymentMode)
	}
	if len(cityCodes) > 0 {
		add("station = ANY($%d)", pq.Array(cityCodes))
	} else if stationFallback != "" {
		add("station ILIKE $%d", "%"+stationFallback+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC NULLS LAST LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, f.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.StationBilty
	for rows.Next() {
		s, err := scanStationBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ------------------------ Workbench fetches ------------------------

func (r *PostgresBiltyRepo) GetRegularByIDs(ids []int64) ([]*models.Bilty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`SELECT `+regularCols+` FROM bilty WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Bilty
	for rows.Next() {
		b, err := scanBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *PostgresBiltyRepo) GetStationByIDs(ids []int64) ([]*models.StationBilty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`SELECT `+stationCols+` FROM station_bilty_summary WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.StationBilty
	for rows.Next() {
		s, err := scanStationBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *PostgresBiltyRepo) GetRegularByGRNos(grNos []int64) ([]*models.Bilty, error) {
	if len(grNos) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`SELECT `+regularCols+` FROM bilty WHERE gr_no = ANY($1)`, pq.Array(grNos))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Bilty
	for rows.Next() {
		b, err := scanBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *PostgresBiltyRepo) GetStationByGRNos(grNos []int64) ([]*models.StationBilty, error) {
	if len(grNos) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(`SELECT `+stationCols+` FROM station_bilty_summary WHERE gr_no = ANY($1)`, pq.Array(grNos))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.StationBilty
	for rows.Next() {
		s, err := scanStationBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ------------------------ Godown views ------------------------

// RegularPendingAtBranch lists bilties booked to a branch whose GR has not
// reached delivered-at-destination in transit_details (including bilties with
// no transit row at all).
func (r *PostgresBiltyRepo) RegularPendingAtBranch(branchID int64) ([]*models.Bilty, error) {
	rows, err := r.DB.Query(`
		SELECT `+regularCols+` FROM bilty b
		WHERE b.branch_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM transit_details t
			WHERE t.gr_no = b.gr_no AND t.bilty_type = 'regular'
			  AND t.delivered_at_destination = TRUE
		  )
		ORDER BY b.created_at DESC
	`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Bilty
	for rows.Next() {
		b, err := scanBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *PostgresBiltyRepo) StationPendingAtStation(code string) ([]*models.StationBilty, error) {
	rows, err := r.DB.Query(`
		SELECT `+stationCols+` FROM station_bilty_summary s
		WHERE s.station = $1
		  AND NOT EXISTS (
			SELECT 1 FROM transit_details t
			WHERE t.gr_no = s.gr_no AND t.bilty_type = 'station'
			  AND t.delivered_at_destination = TRUE
		  )
		ORDER BY s.created_at DESC NULLS LAST
	`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.StationBilty
	for rows.Next() {
		s, err := scanStationBilty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ------------------------ Writes ------------------------

func (r *PostgresBiltyRepo) CreateStationBilty(s *models.StationBilty) error {
	if s.CreatedAt == nil {
		now := time.Now().UTC()
		s.CreatedAt = &now
	}
	return r.DB.QueryRow(`
		INSERT INTO station_bilty_summary(
			gr_no, station, consignor_name, consignee_name, no_of_packets,
			weight_kg, amount, payment_status, pvt_marks, e_way_bill,
			bilty_date, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`, s.GRNo, s.Station, s.ConsignorName, s.ConsigneeName, s.NoOfPackets,
		s.WeightKG, s.Amount, s.PaymentStatus, s.PVTMarks, s.EWayBill,
		s.BiltyDate, s.CreatedAt,
	).Scan(&s.ID)
}

func (r *PostgresBiltyRepo) UpdateImageURL(t models.ConsignmentType, id int64, url string) error {
	table := "bilty"
	if t == models.ConsignmentStation {
		table = "station_bilty_summary"
	}
	res, err := r.DB.Exec(`UPDATE `+table+` SET image_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
