package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"transportbooking/internal/domain"
	"transportbooking/internal/domain/models"
	"transportbooking/internal/utils"
	"transportbooking/internal/validation"
)

// Seats must be booked at least this long before departure; the same cutoff
// applies to cancellations.
const bookingCutoff = 30

// RouteStore is the route persistence the booking flow needs.
type RouteStore interface {
	FindByID(ctx context.Context, id string) (models.Route, error)
}

// BookingStore is the booking persistence. InsertWithSeat and
// DeleteWithSeat pair the seat-counter update with the booking row change;
// implementations must apply both or neither, and two concurrent inserts
// may never both take the last seat.
type BookingStore interface {
	List(ctx context.Context) ([]models.BookingTicket, error)
	FindByID(ctx context.Context, id string) (models.BookingTicket, error)
	ListByRoute(ctx context.Context, idRoute string) ([]models.BookingTicket, error)
	ListByUser(ctx context.Context, idUser string) ([]models.BookingTicket, error)
	FindByRouteAndPhone(ctx context.Context, idRoute, phone string) (models.BookingTicket, error)
	InsertWithSeat(ctx context.Context, route models.Route, user models.User, bookedAt time.Time) (models.BookingTicket, bool, error)
	DeleteWithSeat(ctx context.Context, idBooking, idRoute string) (released, deleted bool, err error)
}

type UserStore interface {
	FindByCredentials(ctx context.Context, fullName, phone, email string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// BookingService orchestrates seat reservation and release for routes. All
// capacity mutations go through the store's paired operations, which commit
// the seat counter and the booking row together, so the available-seat
// counter can neither go negative nor exceed total capacity and never
// drifts from the booking rows, regardless of how many requests race on
// one route.
type BookingService struct {
	Routes    RouteStore
	Bookings  BookingStore
	Users     UserStore
	RequestID string

	// Now is substituted in tests; nil means wall clock.
	Now func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) List(ctx context.Context) ([]models.BookingTicket, error) {
	bookings, err := s.Bookings.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return bookings, nil
}

func (s BookingService) GetByID(ctx context.Context, idBooking string) (models.BookingTicket, error) {
	booking, err := s.Bookings.FindByID(ctx, idBooking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingTicket{}, domain.NotFoundError{
				Resource: "booking",
				Msg:      fmt.Sprintf("booking with ID %s not found", idBooking),
			}
		}
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}
	return booking, nil
}

// Create books one seat on a route for the user matching the supplied
// passenger details. Preconditions are checked in a fixed order and the
// first violation wins: phone format, email format, route existence, route
// not departed, 30-minute cutoff, user match, seat availability.
func (s BookingService) Create(ctx context.Context, routeID, fullName, phone, email string) (models.BookingTicket, error) {
	if !validation.IsValidPhoneFormat(phone) {
		return models.BookingTicket{}, domain.ValidationError{
			Field: "passengerPhone",
			Msg:   "invalid phone format, use: +7 XXX XXX-XX-XX",
		}
	}
	if !validation.IsValidEmailFormat(email) {
		return models.BookingTicket{}, domain.ValidationError{
			Field: "passengerEmail",
			Msg:   "invalid email format, use: name@domain (mail.ru, inbox.ru, yandex.ru, gmail.com)",
		}
	}

	route, err := s.Routes.FindByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingTicket{}, domain.NotFoundError{
				Resource: "route",
				Msg:      fmt.Sprintf("route with ID %s not found", routeID),
			}
		}
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}

	now := s.now()
	if !now.Before(route.DepartureTime) {
		return models.BookingTicket{}, domain.StateError{
			Msg: "booking is not possible: the route has already departed",
		}
	}
	if minutesUntil(now, route.DepartureTime) < bookingCutoff {
		return models.BookingTicket{}, domain.StateError{
			Msg: "booking is not possible: less than 30 minutes remain before departure",
		}
	}

	user, err := s.Users.FindByCredentials(ctx, fullName, phone, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingTicket{}, domain.NotFoundError{
				Resource: "user",
				Msg:      "no user with the given details was found",
			}
		}
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}

	booking, reserved, err := s.Bookings.InsertWithSeat(ctx, route, user, now)
	if err != nil {
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}
	if !reserved {
		return models.BookingTicket{}, domain.StateError{Msg: "no seats available for booking"}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking=%s route=%s user=%s", booking.IDBooking, route.IDRoute, user.IDUser))
	return booking, nil
}

// Cancel deletes a booking and returns its seat to the route. The same
// departure cutoff applies as for creation.
func (s BookingService) Cancel(ctx context.Context, idBooking string) error {
	booking, err := s.Bookings.FindByID(ctx, idBooking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{
				Resource: "booking",
				Msg:      fmt.Sprintf("booking with ID %s not found", idBooking),
			}
		}
		return domain.InternalError{Err: err}
	}

	route := booking.Route
	now := s.now()
	if !now.Before(route.DepartureTime) {
		return domain.StateError{
			Msg: "cancellation is not possible: the route has already departed",
		}
	}
	if minutesUntil(now, route.DepartureTime) < bookingCutoff {
		return domain.StateError{
			Msg: "cancellation is not possible: less than 30 minutes remain before departure",
		}
	}

	released, deleted, err := s.Bookings.DeleteWithSeat(ctx, idBooking, route.IDRoute)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !released {
		// Reservations and releases are paired 1:1, so a full route here
		// means the counter drifted from the booking rows.
		return domain.InternalError{Msg: "seat release failed: route is already at full capacity"}
	}
	if !deleted {
		return domain.NotFoundError{
			Resource: "booking",
			Msg:      fmt.Sprintf("booking with ID %s not found", idBooking),
		}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking=%s route=%s", idBooking, route.IDRoute))
	return nil
}

func (s BookingService) ListByRoute(ctx context.Context, routeID string) ([]models.BookingTicket, error) {
	if _, err := s.Routes.FindByID(ctx, routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{
				Resource: "route",
				Msg:      fmt.Sprintf("route with ID %s not found", routeID),
			}
		}
		return nil, domain.InternalError{Err: err}
	}
	bookings, err := s.Bookings.ListByRoute(ctx, routeID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return bookings, nil
}

func (s BookingService) GetByRouteAndPhone(ctx context.Context, routeID, phone string) (models.BookingTicket, error) {
	if !validation.IsValidPhoneFormat(phone) {
		return models.BookingTicket{}, domain.ValidationError{
			Field: "passengerPhone",
			Msg:   "invalid phone format, use: +7 XXX XXX-XX-XX",
		}
	}
	if _, err := s.Routes.FindByID(ctx, routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingTicket{}, domain.NotFoundError{
				Resource: "route",
				Msg:      fmt.Sprintf("route with ID %s not found", routeID),
			}
		}
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}
	booking, err := s.Bookings.FindByRouteAndPhone(ctx, routeID, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingTicket{}, domain.NotFoundError{
				Resource: "booking",
				Msg:      fmt.Sprintf("booking with phone '%s' not found", phone),
			}
		}
		return models.BookingTicket{}, domain.InternalError{Err: err}
	}
	return booking, nil
}

func (s BookingService) ListByPassengerEmail(ctx context.Context, email string) ([]models.BookingTicket, error) {
	if !validation.IsValidEmailFormat(email) {
		return nil, domain.ValidationError{
			Field: "passengerEmail",
			Msg:   "invalid email format, use: name@domain (mail.ru, inbox.ru, yandex.ru, gmail.com)",
		}
	}
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{
				Resource: "user",
				Msg:      fmt.Sprintf("user with email %s not found", email),
			}
		}
		return nil, domain.InternalError{Err: err}
	}
	bookings, err := s.Bookings.ListByUser(ctx, user.IDUser)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return bookings, nil
}

// minutesUntil counts whole minutes between now and departure, truncating
// toward zero. 30m01s yields 30 and passes the cutoff; 29m59s yields 29.
func minutesUntil(now, departure time.Time) int64 {
	return int64(departure.Sub(now) / time.Minute)
}
