package repository

import (
	"database/sql"

	"sangamtransport/models"
)

type PostgresLookupRepo struct {
	DB *sql.DB
}

func NewPostgresLookupRepo(db *sql.DB) *PostgresLookupRepo {
	return &PostgresLookupRepo{DB: db}
}

func (r *PostgresLookupRepo) FindCitiesByName(name string) ([]*models.City, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, code, created_at
		FROM cities
		WHERE name ILIKE $1
		ORDER BY name
	`, "%"+name+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCities(rows)
}

func (r *PostgresLookupRepo) AllCities() ([]*models.City, error) {
	rows, err := r.DB.Query(`SELECT id, name, code, created_at FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCities(rows)
}

func scanCities(rows *sql.Rows) ([]*models.City, error) {
	var result []*models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *PostgresLookupRepo) AllBranches() ([]*models.Branch, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, code, address, city_id, mobile, created_at
		FROM branches ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CityID, &b.Mobile, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

func (r *PostgresLookupRepo) GetBranchByID(id int64) (*models.Branch, error) {
	var b models.Branch
	err := r.DB.QueryRow(`
		SELECT id, name, code, address, city_id, mobile, created_at
		FROM branches WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.CityID, &b.Mobile, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresLookupRepo) AllTransports() ([]*models.Transport, error) {
	rows, err := r.DB.Query(`SELECT id, name, city_id, mobile, created_at FROM transports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Transport
	for rows.Next() {
		var t models.Transport
		if err := rows.Scan(&t.ID, &t.Name, &t.CityID, &t.Mobile, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *PostgresLookupRepo) StaffByRole(role string) ([]*models.Staff, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, role, mobile, branch_id, created_at
		FROM staff WHERE role = $1 ORDER BY name
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Staff
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.Mobile, &s.BranchID, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *PostgresLookupRepo) AllTrucks() ([]*models.Truck, error) {
	rows, err := r.DB.Query(`SELECT id, number, owner_id, created_at FROM trucks ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Truck
	for rows.Next() {
		var t models.Truck
		if err := rows.Scan(&t.ID, &t.Number, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
