package repositories

import (
	"context"
	"database/sql"

	"transportbooking/internal/domain/models"
)

type CityRepository struct {
	DB *sql.DB
}

func (r CityRepository) List(ctx context.Context) ([]models.City, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id_city, city_name FROM cities ORDER BY city_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.IDCity, &c.CityName); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r CityRepository) FindByID(ctx context.Context, id string) (models.City, error) {
	var c models.City
	err := r.DB.QueryRowContext(ctx,
		`SELECT id_city, city_name FROM cities WHERE id_city = ?`, id).
		Scan(&c.IDCity, &c.CityName)
	return c, err
}

func (r CityRepository) FindByName(ctx context.Context, name string) (models.City, error) {
	var c models.City
	err := r.DB.QueryRowContext(ctx,
		`SELECT id_city, city_name FROM cities WHERE city_name = ?`, name).
		Scan(&c.IDCity, &c.CityName)
	return c, err
}

func (r CityRepository) Insert(ctx context.Context, c models.City) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO cities (id_city, city_name) VALUES (?, ?)`, c.IDCity, c.CityName)
	return err
}

func (r CityRepository) Update(ctx context.Context, c models.City) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cities SET city_name = ? WHERE id_city = ?`, c.CityName, c.IDCity)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r CityRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cities WHERE id_city = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r CityRepository) NextID(ctx context.Context) (string, error) {
	return NextID(ctx, r.DB, "cities", "id_city", "c")
}
