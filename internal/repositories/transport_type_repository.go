package repositories

import (
	"context"
	"database/sql"

	"transportbooking/internal/domain/models"
)

type TransportTypeRepository struct {
	DB *sql.DB
}

func (r TransportTypeRepository) List(ctx context.Context) ([]models.TransportType, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id_transport_type, transport_type FROM transport_types ORDER BY id_transport_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.TransportType
	for rows.Next() {
		var t models.TransportType
		if err := rows.Scan(&t.IDTransportType, &t.TransportType); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r TransportTypeRepository) FindByID(ctx context.Context, id string) (models.TransportType, error) {
	var t models.TransportType
	err := r.DB.QueryRowContext(ctx,
		`SELECT id_transport_type, transport_type FROM transport_types WHERE id_transport_type = ?`, id).
		Scan(&t.IDTransportType, &t.TransportType)
	return t, err
}

func (r TransportTypeRepository) FindByName(ctx context.Context, name string) (models.TransportType, error) {
	var t models.TransportType
	err := r.DB.QueryRowContext(ctx,
		`SELECT id_transport_type, transport_type FROM transport_types WHERE transport_type = ?`, name).
		Scan(&t.IDTransportType, &t.TransportType)
	return t, err
}

func (r TransportTypeRepository) Insert(ctx context.Context, t models.TransportType) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO transport_types (id_transport_type, transport_type) VALUES (?, ?)`,
		t.IDTransportType, t.TransportType)
	return err
}

func (r TransportTypeRepository) Update(ctx context.Context, t models.TransportType) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE transport_types SET transport_type = ? WHERE id_transport_type = ?`,
		t.TransportType, t.IDTransportType)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r TransportTypeRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM transport_types WHERE id_transport_type = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r TransportTypeRepository) NextID(ctx context.Context) (string, error) {
	return NextID(ctx, r.DB, "transport_types", "id_transport_type", "t")
}
