package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"transportbooking/internal/domain"
	"transportbooking/internal/domain/models"
	"transportbooking/internal/repositories"
	"transportbooking/internal/utils"
)

const (
	routeTimeLayout  = "2006-01-02 15:04"
	searchDateLayout = "02.01.2006"
)

// RouteService provides route CRUD and the search paths the clients use.
// Seat counters on existing routes are owned by BookingService; this service
// only sets the initial capacity at creation time.
type RouteService struct {
	Routes         repositories.RouteRepository
	Cities         repositories.CityRepository
	TransportTypes repositories.TransportTypeRepository
	RequestID      string
}

func (s RouteService) List(ctx context.Context) ([]models.Route, error) {
	routes, err := s.Routes.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found"}
	}
	return routes, nil
}

func (s RouteService) ListPage(ctx context.Context, page, size int, minDeparture *time.Time) (models.RoutePage, error) {
	if page < 0 || size <= 0 {
		return models.RoutePage{}, domain.ValidationError{Field: "pagination", Msg: "page must be >= 0 and size > 0"}
	}
	result, err := s.Routes.ListPage(ctx, page, size, minDeparture)
	if err != nil {
		return models.RoutePage{}, domain.InternalError{Err: err}
	}
	return result, nil
}

func (s RouteService) GetByID(ctx context.Context, id string) (models.Route, error) {
	route, err := s.Routes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{
				Resource: "route",
				Msg:      fmt.Sprintf("route with ID %s not found", id),
			}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return route, nil
}

func (s RouteService) ListByTransportType(ctx context.Context, transportType string) ([]models.Route, error) {
	tt, err := s.TransportTypes.FindByName(ctx, transportType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{
				Resource: "transport type",
				Msg:      fmt.Sprintf("transport type '%s' not found", transportType),
			}
		}
		return nil, domain.InternalError{Err: err}
	}
	routes, err := s.Routes.ListByTransportType(ctx, tt.IDTransportType)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found for the given transport type"}
	}
	return routes, nil
}

func (s RouteService) ListByDepartureCity(ctx context.Context, cityName string) ([]models.Route, error) {
	city, err := s.findCity(ctx, cityName, "departure city")
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes.ListByDepartureCity(ctx, city.IDCity)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found with the given departure city"}
	}
	return routes, nil
}

func (s RouteService) ListByDestinationCity(ctx context.Context, cityName string) ([]models.Route, error) {
	city, err := s.findCity(ctx, cityName, "destination city")
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes.ListByDestinationCity(ctx, city.IDCity)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found with the given destination city"}
	}
	return routes, nil
}

func (s RouteService) ListByCityPair(ctx context.Context, departureCity, destinationCity string) ([]models.Route, error) {
	if strings.TrimSpace(departureCity) == "" || strings.TrimSpace(destinationCity) == "" {
		return nil, domain.ValidationError{Msg: "both departure and destination cities must be specified"}
	}
	dep, err := s.findCity(ctx, departureCity, "departure city")
	if err != nil {
		return nil, err
	}
	dest, err := s.findCity(ctx, destinationCity, "destination city")
	if err != nil {
		return nil, err
	}
	routes, err := s.Routes.ListByCityPair(ctx, dep.IDCity, dest.IDCity)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return routes, nil
}

// ListForExactDate returns routes departing on one calendar day. The client
// sends dates as dd.MM.yyyy.
func (s RouteService) ListForExactDate(ctx context.Context, exactDate string) ([]models.Route, error) {
	day, err := time.ParseInLocation(searchDateLayout, exactDate, time.Local)
	if err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "invalid date format, use 'dd.MM.yyyy'"}
	}
	routes, err := s.Routes.ListByDepartureBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found for the given date"}
	}
	return routes, nil
}

func (s RouteService) ListWithinDateRange(ctx context.Context, startDate, endDate string) ([]models.Route, error) {
	start, err := time.ParseInLocation(searchDateLayout, startDate, time.Local)
	if err != nil {
		return nil, domain.ValidationError{Field: "startDate", Msg: "invalid date format, use 'dd.MM.yyyy'"}
	}
	end, err := time.ParseInLocation(searchDateLayout, endDate, time.Local)
	if err != nil {
		return nil, domain.ValidationError{Field: "endDate", Msg: "invalid date format, use 'dd.MM.yyyy'"}
	}
	routes, err := s.Routes.ListByDepartureBetween(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if len(routes) == 0 {
		return nil, domain.NotFoundError{Resource: "routes", Msg: "no routes found in the given date range"}
	}
	return routes, nil
}

type CreateRouteInput struct {
	TransportType        string
	DepartureCity        string
	DestinationCity      string
	DepartureTime        string
	ArrivalTime          string
	TotalNumberSeats     int
	NumberAvailableSeats int
}

func (s RouteService) Create(ctx context.Context, in CreateRouteInput) (models.Route, error) {
	if in.TransportType == "" || in.DepartureCity == "" || in.DestinationCity == "" ||
		in.DepartureTime == "" || in.ArrivalTime == "" {
		return models.Route{}, domain.ValidationError{Msg: "all fields must be filled in"}
	}
	if in.TotalNumberSeats <= 0 {
		return models.Route{}, domain.ValidationError{Field: "totalNumberSeats", Msg: "total seat count must be greater than zero"}
	}
	if in.NumberAvailableSeats < 0 || in.NumberAvailableSeats > in.TotalNumberSeats {
		return models.Route{}, domain.ValidationError{Field: "numberAvailableSeats", Msg: "available seats must be between 0 and the total seat count"}
	}

	departure, err := time.ParseInLocation(routeTimeLayout, in.DepartureTime, time.Local)
	if err != nil {
		return models.Route{}, domain.ValidationError{Field: "departureTime", Msg: "invalid time format, use 'yyyy-MM-dd HH:mm'"}
	}
	arrival, err := time.ParseInLocation(routeTimeLayout, in.ArrivalTime, time.Local)
	if err != nil {
		return models.Route{}, domain.ValidationError{Field: "arrivalTime", Msg: "invalid time format, use 'yyyy-MM-dd HH:mm'"}
	}
	if arrival.Before(departure) {
		return models.Route{}, domain.ValidationError{Msg: "arrival time cannot be earlier than departure time"}
	}

	tt, err := s.TransportTypes.FindByName(ctx, in.TransportType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{
				Resource: "transport type",
				Msg:      fmt.Sprintf("transport type '%s' not found", in.TransportType),
			}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	dep, err := s.findCity(ctx, in.DepartureCity, "departure city")
	if err != nil {
		return models.Route{}, err
	}
	dest, err := s.findCity(ctx, in.DestinationCity, "destination city")
	if err != nil {
		return models.Route{}, err
	}

	id, err := s.Routes.NextID(ctx)
	if err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}

	route := models.Route{
		IDRoute:              id,
		TransportType:        tt,
		DepartureCity:        dep,
		DestinationCity:      dest,
		DepartureTime:        departure,
		ArrivalTime:          arrival,
		TotalNumberSeats:     in.TotalNumberSeats,
		NumberAvailableSeats: in.NumberAvailableSeats,
	}
	if err := s.Routes.Insert(ctx, route); err != nil {
		return models.Route{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "route", "create", fmt.Sprintf("route=%s", id))
	return route, nil
}

func (s RouteService) Delete(ctx context.Context, id string) error {
	deleted, err := s.Routes.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{
			Resource: "route",
			Msg:      fmt.Sprintf("route with ID %s not found", id),
		}
	}
	utils.LogEvent(s.RequestID, "route", "delete", fmt.Sprintf("route=%s", id))
	return nil
}

func (s RouteService) findCity(ctx context.Context, name, role string) (models.City, error) {
	city, err := s.Cities.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.City{}, domain.NotFoundError{
				Resource: role,
				Msg:      fmt.Sprintf("%s '%s' not found", role, name),
			}
		}
		return models.City{}, domain.InternalError{Err: err}
	}
	return city, nil
}
