package repository

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"sangamtransport/models"

	"github.com/lib/pq"
)

type PostgresChallanRepo struct {
	DB *sql.DB
}

func NewPostgresChallanRepo(db *sql.DB) *PostgresChallanRepo {
	return &PostgresChallanRepo{DB: db}
}

const challanCols = `
	c.id, c.challan_no, c.truck_id, c.owner_id, c.driver_id, c.branch_id,
	c.total_weight, c.is_dispatched, c.dispatch_date, c.remarks, c.created_at
`

func (r *PostgresChallanRepo) CreateChallan(c *models.Challan) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO challan_details(
			challan_no, truck_id, owner_id, driver_id, branch_id,
			total_weight, is_dispatched, dispatch_date, remarks, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`, c.ChallanNo, c.TruckID, c.OwnerID, c.DriverID, c.BranchID,
		c.TotalWeight, c.IsDispatched, c.DispatchDate, c.Remarks, c.CreatedAt,
	).Scan(&c.ID)
}

// ListChallans returns challans with truck, staff and branch joined in, most
// recent first.
func (r *PostgresChallanRepo) ListChallans(limit, offset int) ([]*models.Challan, error) {
	rows, err := r.DB.Query(`
		SELECT `+challanCols+`,
			tk.id, tk.number,
			o.id, o.name, o.role,
			d.id, d.name, d.role,
			br.id, br.name, br.code
		FROM challan_details c
		LEFT JOIN trucks tk ON c.truck_id = tk.id
		LEFT JOIN staff o ON c.owner_id = o.id
		LEFT JOIN staff d ON c.driver_id = d.id
		LEFT JOIN branches br ON c.branch_id = br.id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Challan
	for rows.Next() {
		var c models.Challan
		var truck models.Truck
		var owner, driver models.Staff
		var branch models.Branch
		var truckID, ownerID, driverID, branchID sql.NullInt64
		var truckNo, ownerName, ownerRole, driverName, driverRole, branchName, branchCode sql.NullString

		err := rows.Scan(
			&c.ID, &c.ChallanNo, &c.TruckID, &c.OwnerID, &c.DriverID, &c.BranchID,
			&c.TotalWeight, &c.IsDispatched, &c.DispatchDate, &c.Remarks, &c.CreatedAt,
			&truckID, &truckNo,
			&ownerID, &ownerName, &ownerRole,
			&driverID, &driverName, &driverRole,
			&branchID, &branchName, &branchCode,
		)
		if err != nil {
			return nil, err
		}

		if truckID.Valid {
			truck.ID = truckID.Int64
			truck.Number = truckNo.String
			c.Truck = &truck
		}
		if ownerID.Valid {
			owner.ID = ownerID.Int64
			owner.Name = ownerName.String
			owner.Role = ownerRole.String
			c.Owner = &owner
		}
		if driverID.Valid {
			driver.ID = driverID.Int64
			driver.Name = driverName.String
			driver.Role = driverRole.String
			c.Driver = &driver
		}
		if branchID.Valid {
			branch.ID = branchID.Int64
			branch.Name = branchName.String
			branch.Code = branchCode.String
			c.Branch = &branch
		}

		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *PostgresChallanRepo) GetChallanByID(id int64) (*models.Challan, error) {
	row := r.DB.QueryRow(`SELECT `+challanCols+` FROM challan_details c WHERE c.id = $1`, id)

	var c models.Challan
	err := row.Scan(
		&c.ID, &c.ChallanNo, &c.TruckID, &c.OwnerID, &c.DriverID, &c.BranchID,
		&c.TotalWeight, &c.IsDispatched, &c.DispatchDate, &c.Remarks, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	details, err := r.TransitByChallan(c.ID)
	if err != nil {
		return nil, err
	}
	c.TransitDetails = details
	return &c, nil
}

func (r *PostgresChallanRepo) MarkDispatched(id int64, date time.Time) error {
	res, err := r.DB.Exec(`
		UPDATE challan_details
		SET is_dispatched = TRUE, dispatch_date = $1
		WHERE id = $2
	`, date, id)
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

// ------------------------ Transit details ------------------------

func (r *PostgresChallanRepo) AddTransitDetail(d *models.TransitDetail) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO transit_details(
			challan_id, gr_no, bilty_type, out_for_delivery,
			delivered_at_branch, delivered_at_destination, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, d.ChallanID, d.GRNo, d.BiltyType, d.OutForDelivery,
		d.DeliveredAtBranch, d.DeliveredAtDestination, d.CreatedAt,
	).Scan(&d.ID)
}

func (r *PostgresChallanRepo) TransitByChallan(challanID int64) ([]models.TransitDetail, error) {
	rows, err := r.DB.Query(`
		SELECT id, challan_id, gr_no, bilty_type, out_for_delivery,
		       delivered_at_branch, delivered_at_destination, created_at, updated_at
		FROM transit_details
		WHERE challan_id = $1
		ORDER BY id
	`, challanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.TransitDetail
	for rows.Next() {
		var d models.TransitDetail
		err := rows.Scan(
			&d.ID, &d.ChallanID, &d.GRNo, &d.BiltyType, &d.OutForDelivery,
			&d.DeliveredAtBranch, &d.DeliveredAtDestination, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// UpdateTransitFlags sets only the stage flags that were supplied.
func (r *PostgresChallanRepo) UpdateTransitFlags(id int64, outForDelivery, deliveredAtBranch, deliveredAtDestination *bool) error {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	i := 2
	if outForDelivery != nil {
		sets = append(sets, "out_for_delivery = $"+strconv.Itoa(i))
		args = append(args, *outForDelivery)
		i++
	}
	if deliveredAtBranch != nil {
		sets = append(sets, "delivered_at_branch = $"+strconv.Itoa(i))
		args = append(args, *deliveredAtBranch)
		i++
	}
	if deliveredAtDestination != nil {
		sets = append(sets, "delivered_at_destination = $"+strconv.Itoa(i))
		args = append(args, *deliveredAtDestination)
		i++
	}
	args = append(args, id)

	res, err := r.DB.Exec(`UPDATE transit_details SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(i), args...)
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

// ------------------------ Enrichment ------------------------

func (r *PostgresChallanRepo) DispatchInfoByGR(grNos []int64) (map[int64]models.DispatchInfo, error) {
	if len(grNos) == 0 {
		return map[int64]models.DispatchInfo{}, nil
	}
	rows, err := r.DB.Query(`
		SELECT t.gr_no, c.challan_no, c.dispatch_date
		FROM transit_details t
		JOIN challan_details c ON t.challan_id = c.id
		WHERE t.gr_no = ANY($1)
	`, pq.Array(grNos))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]models.DispatchInfo)
	for rows.Next() {
		var gr int64
		var info models.DispatchInfo
		if err := rows.Scan(&gr, &info.ChallanNo, &info.DispatchDate); err != nil {
			return nil, err
		}
		result[gr] = info
	}
	return result, rows.Err()
}
