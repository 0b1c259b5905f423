package db

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB / *sql.Tx the repositories rely on,
// so statements can run either directly or inside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS transport_types (
	id_transport_type VARCHAR(20) PRIMARY KEY,
	transport_type VARCHAR(100) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS cities (
	id_city VARCHAR(20) PRIMARY KEY,
	city_name VARCHAR(150) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS users (
	id_user VARCHAR(20) PRIMARY KEY,
	passenger_full_name VARCHAR(255) NOT NULL,
	passenger_phone VARCHAR(50) NOT NULL,
	passenger_email VARCHAR(255) NOT NULL,
	date_of_birth DATE NOT NULL,
	password VARCHAR(100) NOT NULL,
	UNIQUE KEY uniq_user_phone (passenger_phone),
	UNIQUE KEY uniq_user_email (passenger_email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS routes (
	id_route VARCHAR(20) PRIMARY KEY,
	id_transport_type VARCHAR(20) NOT NULL,
	id_departure_city VARCHAR(20) NOT NULL,
	id_destination_city VARCHAR(20) NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	total_number_seats INT NOT NULL,
	number_available_seats INT NOT NULL,
	KEY idx_route_departure_time (departure_time),
	CONSTRAINT fk_route_transport FOREIGN KEY (id_transport_type) REFERENCES transport_types (id_transport_type),
	CONSTRAINT fk_route_departure_city FOREIGN KEY (id_departure_city) REFERENCES cities (id_city),
	CONSTRAINT fk_route_destination_city FOREIGN KEY (id_destination_city) REFERENCES cities (id_city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	`CREATE TABLE IF NOT EXISTS booking_tickets (
	id_booking VARCHAR(20) PRIMARY KEY,
	id_route VARCHAR(20) NOT NULL,
	id_user VARCHAR(20) NOT NULL,
	booking_date DATETIME NOT NULL,
	KEY idx_booking_route (id_route),
	KEY idx_booking_user (id_user),
	CONSTRAINT fk_booking_route FOREIGN KEY (id_route) REFERENCES routes (id_route),
	CONSTRAINT fk_booking_user FOREIGN KEY (id_user) REFERENCES users (id_user)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates the tables the service needs when they are absent.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
