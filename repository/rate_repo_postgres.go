package repository

import (
	"database/sql"
	"time"

	"sangamtransport/models"
)

type PostgresRateRepo struct {
	DB *sql.DB
}

func NewPostgresRateRepo(db *sql.DB) *PostgresRateRepo {
	return &PostgresRateRepo{DB: db}
}

const rateCols = `
	r.id, r.transport_id, r.dest_city_id, r.goods_type, r.pricing_mode,
	r.rate_per_kg, r.rate_per_pkg, r.min_charge, r.hamali_per_pkt, r.dd_charge,
	r.is_active, r.created_at, r.updated_at
`

func (r *PostgresRateRepo) ListActiveRates() ([]*models.TransportHubRate, error) {
	rows, err := r.DB.Query(`
		SELECT ` + rateCols + `,
			t.id, t.name,
			ct.id, ct.name, ct.code
		FROM transport_hub_rates r
		LEFT JOIN transports t ON r.transport_id = t.id
		LEFT JOIN cities ct ON r.dest_city_id = ct.id
		WHERE r.is_active = TRUE
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.TransportHubRate
	for rows.Next() {
		var rate models.TransportHubRate
		var transport models.Transport
		var city models.City
		var tID, cID sql.NullInt64
		var tName, cName, cCode sql.NullString

		err := rows.Scan(
			&rate.ID, &rate.TransportID, &rate.DestCityID, &rate.GoodsType, &rate.PricingMode,
			&rate.RatePerKG, &rate.RatePerPkg, &rate.MinCharge, &rate.HamaliPerPkt, &rate.DDCharge,
			&rate.IsActive, &rate.CreatedAt, &rate.UpdatedAt,
			&tID, &tName,
			&cID, &cName, &cCode,
		)
		if err != nil {
			return nil, err
		}

		if tID.Valid {
			transport.ID = tID.Int64
			transport.Name = tName.String
			rate.Transport = &transport
		}
		if cID.Valid {
			city.ID = cID.Int64
			city.Name = cName.String
			city.Code = cCode.String
			rate.DestCity = &city
		}
		result = append(result, &rate)
	}
	return result, rows.Err()
}

func (r *PostgresRateRepo) CreateRate(rate *models.TransportHubRate) error {
	if rate.CreatedAt.IsZero() {
		rate.CreatedAt = time.Now().UTC()
	}
	rate.IsActive = true
	return r.DB.QueryRow(`
		INSERT INTO transport_hub_rates(
			transport_id, dest_city_id, goods_type, pricing_mode,
			rate_per_kg, rate_per_pkg, min_charge, hamali_per_pkt, dd_charge,
			is_active, created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`, rate.TransportID, rate.DestCityID, rate.GoodsType, rate.PricingMode,
		rate.RatePerKG, rate.RatePerPkg, rate.MinCharge, rate.HamaliPerPkt, rate.DDCharge,
		rate.IsActive, rate.CreatedAt,
	).Scan(&rate.ID)
}

func (r *PostgresRateRepo) UpdateRate(rate *models.TransportHubRate) error {
	now := time.Now().UTC()
	rate.UpdatedAt = &now
	res, err := r.DB.Exec(`
		UPDATE transport_hub_rates SET
			transport_id=$1, dest_city_id=$2, goods_type=$3, pricing_mode=$4,
			rate_per_kg=$5, rate_per_pkg=$6, min_charge=$7, hamali_per_pkt=$8,
			dd_charge=$9, updated_at=$10
		WHERE id=$11 AND is_active = TRUE
	`, rate.TransportID, rate.DestCityID, rate.GoodsType, rate.PricingMode,
		rate.RatePerKG, rate.RatePerPkg, rate.MinCharge, rate.HamaliPerPkt,
		rate.DDCharge, rate.UpdatedAt, rate.ID,
	)
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

func (r *PostgresRateRepo) DeactivateRate(id int64) error {
	res, err := r.DB.Exec(`
		UPDATE transport_hub_rates
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2
	`, time.Now().UTC(), id)
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

func (r *PostgresRateRepo) FindRate(transportID, destCityID int64, goodsType string) (*models.TransportHubRate, error) {
	row := r.DB.QueryRow(`
		SELECT `+rateCols+`
		FROM transport_hub_rates r
		WHERE r.transport_id = $1 AND r.dest_city_id = $2 AND r.goods_type = $3
		  AND r.is_active = TRUE
		ORDER BY r.created_at DESC
		LIMIT 1
	`, transportID, destCityID, goodsType)

	var rate models.TransportHubRate
	err := row.Scan(
		&rate.ID, &rate.TransportID, &rate.DestCityID, &rate.GoodsType, &rate.PricingMode,
		&rate.RatePerKG, &rate.RatePerPkg, &rate.MinCharge, &rate.HamaliPerPkt, &rate.DDCharge,
		&rate.IsActive, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
