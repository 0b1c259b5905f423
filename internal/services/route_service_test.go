package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transportbooking/internal/domain"
	"transportbooking/internal/repositories"
)

func newRouteService(t *testing.T) (RouteService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RouteService{
		Routes:         repositories.RouteRepository{DB: db},
		Cities:         repositories.CityRepository{DB: db},
		TransportTypes: repositories.TransportTypeRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func serviceRouteRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id_route",
		"id_transport_type", "transport_type",
		"dc_id_city", "dc_city_name",
		"ac_id_city", "ac_city_name",
		"departure_time", "arrival_time",
		"total_number_seats", "number_available_seats",
	})
}

func TestRouteCreate(t *testing.T) {
	svc, mock, done := newRouteService(t)
	defer done()

	mock.ExpectQuery("FROM transport_types").WithArgs("Bus").
		WillReturnRows(sqlmock.NewRows([]string{"id_transport_type", "transport_type"}).AddRow("t1", "Bus"))
	mock.ExpectQuery("FROM cities").WithArgs("Moscow").
		WillReturnRows(sqlmock.NewRows([]string{"id_city", "city_name"}).AddRow("c1", "Moscow"))
	mock.ExpectQuery("FROM cities").WithArgs("Kazan").
		WillReturnRows(sqlmock.NewRows([]string{"id_city", "city_name"}).AddRow("c2", "Kazan"))
	mock.ExpectQuery("SELECT id_route FROM routes").
		WillReturnRows(sqlmock.NewRows([]string{"id_route"}).AddRow("r2"))
	mock.ExpectExec("INSERT INTO routes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	route, err := svc.Create(context.Background(), CreateRouteInput{
		TransportType:        "Bus",
		DepartureCity:        "Moscow",
		DestinationCity:      "Kazan",
		DepartureTime:        "2025-07-01 12:00",
		ArrivalTime:          "2025-07-01 18:00",
		TotalNumberSeats:     40,
		NumberAvailableSeats: 40,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if route.IDRoute != "r3" {
		t.Errorf("route id = %q, want r3", route.IDRoute)
	}
	if route.DepartureCity.IDCity != "c1" || route.DestinationCity.IDCity != "c2" {
		t.Errorf("cities resolved wrong: %+v", route)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteCreateValidation(t *testing.T) {
	svc, mock, done := newRouteService(t)
	defer done()

	valid := CreateRouteInput{
		TransportType:        "Bus",
		DepartureCity:        "Moscow",
		DestinationCity:      "Kazan",
		DepartureTime:        "2025-07-01 12:00",
		ArrivalTime:          "2025-07-01 18:00",
		TotalNumberSeats:     40,
		NumberAvailableSeats: 40,
	}

	cases := []struct {
		name   string
		mutate func(*CreateRouteInput)
	}{
		{"missing field", func(in *CreateRouteInput) { in.DepartureCity = "" }},
		{"zero seats", func(in *CreateRouteInput) { in.TotalNumberSeats = 0 }},
		{"available over total", func(in *CreateRouteInput) { in.NumberAvailableSeats = 41 }},
		{"negative available", func(in *CreateRouteInput) { in.NumberAvailableSeats = -1 }},
		{"bad time format", func(in *CreateRouteInput) { in.DepartureTime = "01.07.2025 12:00" }},
		{"arrival before departure", func(in *CreateRouteInput) { in.ArrivalTime = "2025-07-01 08:00" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}

func TestRouteListForExactDate(t *testing.T) {
	svc, mock, done := newRouteService(t)
	defer done()
	ctx := context.Background()

	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	dep := day.Add(12 * time.Hour)
	mock.ExpectQuery("FROM routes r").WithArgs(day, day.AddDate(0, 0, 1)).
		WillReturnRows(serviceRouteRows().
			AddRow("r1", "t1", "Bus", "c1", "Moscow", "c2", "Kazan", dep, dep.Add(6*time.Hour), 40, 10))

	routes, err := svc.ListForExactDate(ctx, "01.07.2025")
	if err != nil {
		t.Fatalf("ListForExactDate: %v", err)
	}
	if len(routes) != 1 || routes[0].IDRoute != "r1" {
		t.Fatalf("unexpected routes: %+v", routes)
	}

	_, err = svc.ListForExactDate(ctx, "2025-07-01")
	if !domain.IsValidation(err) {
		t.Fatalf("bad date format: got %v, want validation error", err)
	}

	mock.ExpectQuery("FROM routes r").WithArgs(day, day.AddDate(0, 0, 1)).
		WillReturnRows(serviceRouteRows())
	_, err = svc.ListForExactDate(ctx, "01.07.2025")
	if !domain.IsNotFound(err) {
		t.Fatalf("empty day: got %v, want not-found error", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteGetByIDMissing(t *testing.T) {
	svc, mock, done := newRouteService(t)
	defer done()

	mock.ExpectQuery("FROM routes r").WithArgs("r404").
		WillReturnRows(serviceRouteRows())

	_, err := svc.GetByID(context.Background(), "r404")
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not-found error", err)
	}
	if err.Error() != "route with ID r404 not found" {
		t.Errorf("message = %q", err.Error())
	}
}
