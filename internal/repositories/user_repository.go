package repositories

import (
	"context"
	"database/sql"

	"transportbooking/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userSelect = `
	SELECT id_user, passenger_full_name, passenger_phone, passenger_email, date_of_birth, password
	FROM users`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.IDUser, &u.PassengerFullName, &u.PassengerPhone,
		&u.PassengerEmail, &u.DateOfBirth, &u.Password,
	)
	return u, err
}

func (r UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, userSelect+` ORDER BY id_user ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE id_user = ?`, id))
}

func (r UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE passenger_email = ?`, email))
}

func (r UserRepository) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, userSelect+` WHERE passenger_phone = ?`, phone))
}

// FindByCredentials matches the exact (full name, phone, email) triple a
// passenger supplies when booking.
func (r UserRepository) FindByCredentials(ctx context.Context, fullName, phone, email string) (models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		userSelect+` WHERE passenger_full_name = ? AND passenger_phone = ? AND passenger_email = ?`,
		fullName, phone, email))
}

func (r UserRepository) FindByFullNameAndEmail(ctx context.Context, fullName, email string) (models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		userSelect+` WHERE passenger_full_name = ? AND passenger_email = ?`, fullName, email))
}

func (r UserRepository) Insert(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id_user, passenger_full_name, passenger_phone, passenger_email, date_of_birth, password)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.IDUser, u.PassengerFullName, u.PassengerPhone, u.PassengerEmail, u.DateOfBirth, u.Password,
	)
	return err
}

func (r UserRepository) Update(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET passenger_full_name = ?, passenger_phone = ?, passenger_email = ?, date_of_birth = ?, password = ?
		WHERE id_user = ?`,
		u.PassengerFullName, u.PassengerPhone, u.PassengerEmail, u.DateOfBirth, u.Password, u.IDUser,
	)
	return err
}

func (r UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id_user = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r UserRepository) NextID(ctx context.Context) (string, error) {
	return NextID(ctx, r.DB, "users", "id_user", "u")
}
