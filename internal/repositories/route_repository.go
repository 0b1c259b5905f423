package repositories

import (
	"context"
	"database/sql"
	"time"

	"transportbooking/internal/db"
	"transportbooking/internal/domain/models"
)

// RouteRepository wraps DB access for routes. The seat counter is mutated
// only through the guarded seat UPDATEs below, which BookingRepository runs
// inside its booking transactions so concurrent bookings cannot lose
// updates.
type RouteRepository struct {
	DB *sql.DB
}

const routeSelect = `
	SELECT
		r.id_route,
		t.id_transport_type, t.transport_type,
		dc.id_city, dc.city_name,
		ac.id_city, ac.city_name,
		r.departure_time, r.arrival_time,
		r.total_number_seats, r.number_available_seats
	FROM routes r
	JOIN transport_types t ON t.id_transport_type = r.id_transport_type
	JOIN cities dc ON dc.id_city = r.id_departure_city
	JOIN cities ac ON ac.id_city = r.id_destination_city`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (models.Route, error) {
	var rt models.Route
	err := row.Scan(
		&rt.IDRoute,
		&rt.TransportType.IDTransportType, &rt.TransportType.TransportType,
		&rt.DepartureCity.IDCity, &rt.DepartureCity.CityName,
		&rt.DestinationCity.IDCity, &rt.DestinationCity.CityName,
		&rt.DepartureTime, &rt.ArrivalTime,
		&rt.TotalNumberSeats, &rt.NumberAvailableSeats,
	)
	return rt, err
}

func (r RouteRepository) collectRoutes(ctx context.Context, query string, args ...any) ([]models.Route, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r RouteRepository) FindByID(ctx context.Context, id string) (models.Route, error) {
	return scanRoute(r.DB.QueryRowContext(ctx, routeSelect+` WHERE r.id_route = ?`, id))
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	return r.collectRoutes(ctx, routeSelect+` ORDER BY r.departure_time ASC`)
}

// ListPage returns one page of routes sorted by departure time ascending,
// optionally keeping only departures after minDeparture.
func (r RouteRepository) ListPage(ctx context.Context, page, size int, minDeparture *time.Time) (models.RoutePage, error) {
	countQuery := `SELECT COUNT(*) FROM routes r`
	listQuery := routeSelect
	var args []any
	if minDeparture != nil {
		countQuery += ` WHERE r.departure_time > ?`
		listQuery += ` WHERE r.departure_time > ?`
		args = append(args, *minDeparture)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.RoutePage{}, err
	}

	listQuery += ` ORDER BY r.departure_time ASC LIMIT ? OFFSET ?`
	args = append(args, size, page*size)

	routes, err := r.collectRoutes(ctx, listQuery, args...)
	if err != nil {
		return models.RoutePage{}, err
	}

	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return models.RoutePage{
		Content:       routes,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (r RouteRepository) ListByTransportType(ctx context.Context, idTransportType string) ([]models.Route, error) {
	return r.collectRoutes(ctx, routeSelect+` WHERE r.id_transport_type = ? ORDER BY r.departure_time ASC`, idTransportType)
}

func (r RouteRepository) ListByDepartureCity(ctx context.Context, idCity string) ([]models.Route, error) {
	return r.collectRoutes(ctx, routeSelect+` WHERE r.id_departure_city = ? ORDER BY r.departure_time ASC`, idCity)
}

func (r RouteRepository) ListByDestinationCity(ctx context.Context, idCity string) ([]models.Route, error) {
	return r.collectRoutes(ctx, routeSelect+` WHERE r.id_destination_city = ? ORDER BY r.departure_time ASC`, idCity)
}

func (r RouteRepository) ListByCityPair(ctx context.Context, idDeparture, idDestination string) ([]models.Route, error) {
	return r.collectRoutes(ctx,
		routeSelect+` WHERE r.id_departure_city = ? AND r.id_destination_city = ? ORDER BY r.departure_time ASC`,
		idDeparture, idDestination)
}

// ListByDepartureBetween returns routes departing within [from, to).
func (r RouteRepository) ListByDepartureBetween(ctx context.Context, from, to time.Time) ([]models.Route, error) {
	return r.collectRoutes(ctx,
		routeSelect+` WHERE r.departure_time >= ? AND r.departure_time < ? ORDER BY r.departure_time ASC`,
		from, to)
}

func (r RouteRepository) Insert(ctx context.Context, rt models.Route) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes
			(id_route, id_transport_type, id_departure_city, id_destination_city,
			 departure_time, arrival_time, total_number_seats, number_available_seats)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.IDRoute,
		rt.TransportType.IDTransportType,
		rt.DepartureCity.IDCity,
		rt.DestinationCity.IDCity,
		rt.DepartureTime,
		rt.ArrivalTime,
		rt.TotalNumberSeats,
		rt.NumberAvailableSeats,
	)
	return err
}

func (r RouteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM routes WHERE id_route = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// reserveSeat takes one seat from the route. The guard keeps the counter
// from going below zero when bookings race for the last seat; a false
// result means no seats were available. Runs on whatever Querier the
// caller holds so it composes into a booking transaction.
func reserveSeat(ctx context.Context, q db.Querier, id string) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE routes
		SET number_available_seats = number_available_seats - 1
		WHERE id_route = ? AND number_available_seats > 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// releaseSeat returns one seat to the route. The guard keeps the counter
// from exceeding total capacity.
func releaseSeat(ctx context.Context, q db.Querier, id string) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE routes
		SET number_available_seats = number_available_seats + 1
		WHERE id_route = ? AND number_available_seats < total_number_seats`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r RouteRepository) NextID(ctx context.Context) (string, error) {
	return NextID(ctx, r.DB, "routes", "id_route", "r")
}
