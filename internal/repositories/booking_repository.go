package repositories

import (
	"context"
	"database/sql"
	"time"

	"transportbooking/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingSelect = `
	SELECT
		b.id_booking, b.booking_date,
		r.id_route,
		t.id_transport_type, t.transport_type,
		dc.id_city, dc.city_name,
		ac.id_city, ac.city_name,
		r.departure_time, r.arrival_time,
		r.total_number_seats, r.number_available_seats,
		u.id_user, u.passenger_full_name, u.passenger_phone, u.passenger_email, u.date_of_birth
	FROM booking_tickets b
	JOIN routes r ON r.id_route = b.id_route
	JOIN transport_types t ON t.id_transport_type = r.id_transport_type
	JOIN cities dc ON dc.id_city = r.id_departure_city
	JOIN cities ac ON ac.id_city = r.id_destination_city
	JOIN users u ON u.id_user = b.id_user`

func scanBooking(row rowScanner) (models.BookingTicket, error) {
	var b models.BookingTicket
	err := row.Scan(
		&b.IDBooking, &b.BookingDate,
		&b.Route.IDRoute,
		&b.Route.TransportType.IDTransportType, &b.Route.TransportType.TransportType,
		&b.Route.DepartureCity.IDCity, &b.Route.DepartureCity.CityName,
		&b.Route.DestinationCity.IDCity, &b.Route.DestinationCity.CityName,
		&b.Route.DepartureTime, &b.Route.ArrivalTime,
		&b.Route.TotalNumberSeats, &b.Route.NumberAvailableSeats,
		&b.User.IDUser, &b.User.PassengerFullName, &b.User.PassengerPhone,
		&b.User.PassengerEmail, &b.User.DateOfBirth,
	)
	return b, err
}

func (r BookingRepository) collectBookings(ctx context.Context, query string, args ...any) ([]models.BookingTicket, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.BookingTicket
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r BookingRepository) List(ctx context.Context) ([]models.BookingTicket, error) {
	return r.collectBookings(ctx, bookingSelect+` ORDER BY b.booking_date ASC`)
}

func (r BookingRepository) FindByID(ctx context.Context, id string) (models.BookingTicket, error) {
	return scanBooking(r.DB.QueryRowContext(ctx, bookingSelect+` WHERE b.id_booking = ?`, id))
}

func (r BookingRepository) ListByRoute(ctx context.Context, idRoute string) ([]models.BookingTicket, error) {
	return r.collectBookings(ctx, bookingSelect+` WHERE b.id_route = ? ORDER BY b.booking_date ASC`, idRoute)
}

func (r BookingRepository) ListByUser(ctx context.Context, idUser string) ([]models.BookingTicket, error) {
	return r.collectBookings(ctx, bookingSelect+` WHERE b.id_user = ? ORDER BY b.booking_date ASC`, idUser)
}

func (r BookingRepository) FindByRouteAndPhone(ctx context.Context, idRoute, phone string) (models.BookingTicket, error) {
	return scanBooking(r.DB.QueryRowContext(ctx,
		bookingSelect+` WHERE b.id_route = ? AND u.passenger_phone = ? LIMIT 1`, idRoute, phone))
}

// InsertWithSeat reserves one seat and writes the booking row in a single
// transaction; a failure in either statement rolls back both. A false
// result means the route had no seats left and nothing was committed.
func (r BookingRepository) InsertWithSeat(ctx context.Context, route models.Route, user models.User, bookedAt time.Time) (models.BookingTicket, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.BookingTicket{}, false, err
	}
	defer tx.Rollback()

	reserved, err := reserveSeat(ctx, tx, route.IDRoute)
	if err != nil {
		return models.BookingTicket{}, false, err
	}
	if !reserved {
		return models.BookingTicket{}, false, nil
	}

	id, err := NextID(ctx, tx, "booking_tickets", "id_booking", "b")
	if err != nil {
		return models.BookingTicket{}, false, err
	}

	route.NumberAvailableSeats--
	booking := models.BookingTicket{
		IDBooking:   id,
		Route:       route,
		User:        user,
		BookingDate: bookedAt,
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO booking_tickets (id_booking, id_route, id_user, booking_date)
		VALUES (?, ?, ?, ?)`,
		booking.IDBooking, route.IDRoute, user.IDUser, bookedAt,
	); err != nil {
		return models.BookingTicket{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return models.BookingTicket{}, false, err
	}
	return booking, true, nil
}

// DeleteWithSeat returns the seat and removes the booking row as one
// transaction. released=false means the counter was already at full
// capacity, deleted=false means the row was gone; in both cases the
// rollback leaves counter and rows untouched.
func (r BookingRepository) DeleteWithSeat(ctx context.Context, idBooking, idRoute string) (released, deleted bool, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, false, err
	}
	defer tx.Rollback()

	released, err = releaseSeat(ctx, tx, idRoute)
	if err != nil || !released {
		return released, false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM booking_tickets WHERE id_booking = ?`, idBooking)
	if err != nil {
		return true, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return true, false, err
	}
	if n == 0 {
		return true, false, nil
	}
	if err := tx.Commit(); err != nil {
		return true, false, err
	}
	return true, true, nil
}
