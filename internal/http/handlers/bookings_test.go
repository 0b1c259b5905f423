package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/domain/models"
)

type stubRouteStore struct {
	mu    sync.Mutex
	route models.Route
}

func (s *stubRouteStore) FindByID(ctx context.Context, id string) (models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.route.IDRoute {
		return models.Route{}, sql.ErrNoRows
	}
	return s.route, nil
}

func (s *stubRouteStore) reserve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.route.IDRoute || s.route.NumberAvailableSeats <= 0 {
		return false
	}
	s.route.NumberAvailableSeats--
	return true
}

func (s *stubRouteStore) release(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.route.IDRoute || s.route.NumberAvailableSeats >= s.route.TotalNumberSeats {
		return false
	}
	s.route.NumberAvailableSeats++
	return true
}

type stubBookingStore struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]models.BookingTicket
	routes   *stubRouteStore
}

func newStubBookingStore(routes *stubRouteStore) *stubBookingStore {
	return &stubBookingStore{bookings: make(map[string]models.BookingTicket), routes: routes}
}

func (s *stubBookingStore) List(ctx context.Context) ([]models.BookingTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BookingTicket, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubBookingStore) FindByID(ctx context.Context, id string) (models.BookingTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return models.BookingTicket{}, sql.ErrNoRows
	}
	return b, nil
}

func (s *stubBookingStore) ListByRoute(ctx context.Context, idRoute string) ([]models.BookingTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BookingTicket
	for _, b := range s.bookings {
		if b.Route.IDRoute == idRoute {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) ListByUser(ctx context.Context, idUser string) ([]models.BookingTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BookingTicket
	for _, b := range s.bookings {
		if b.User.IDUser == idUser {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookingStore) FindByRouteAndPhone(ctx context.Context, idRoute, phone string) (models.BookingTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.Route.IDRoute == idRoute && b.User.PassengerPhone == phone {
			return b, nil
		}
	}
	return models.BookingTicket{}, sql.ErrNoRows
}

func (s *stubBookingStore) InsertWithSeat(ctx context.Context, route models.Route, user models.User, bookedAt time.Time) (models.BookingTicket, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.routes.reserve(route.IDRoute) {
		return models.BookingTicket{}, false, nil
	}
	s.seq++
	route.NumberAvailableSeats--
	b := models.BookingTicket{
		IDBooking:   "b" + strconv.Itoa(s.seq),
		Route:       route,
		User:        user,
		BookingDate: bookedAt,
	}
	s.bookings[b.IDBooking] = b
	return b, true, nil
}

func (s *stubBookingStore) DeleteWithSeat(ctx context.Context, idBooking, idRoute string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.routes.release(idRoute) {
		return false, false, nil
	}
	if _, ok := s.bookings[idBooking]; !ok {
		s.routes.reserve(idRoute)
		return true, false, nil
	}
	delete(s.bookings, idBooking)
	return true, true, nil
}

type stubUserStore struct {
	user models.User
}

func (s *stubUserStore) FindByCredentials(ctx context.Context, fullName, phone, email string) (models.User, error) {
	if s.user.PassengerFullName == fullName && s.user.PassengerPhone == phone && s.user.PassengerEmail == email {
		return s.user, nil
	}
	return models.User{}, sql.ErrNoRows
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if s.user.PassengerEmail == email {
		return s.user, nil
	}
	return models.User{}, sql.ErrNoRows
}

func bookingTestServer(route models.Route) (*gin.Engine, *stubRouteStore, *stubBookingStore) {
	gin.SetMode(gin.TestMode)
	routes := &stubRouteStore{route: route}
	bookings := newStubBookingStore(routes)
	users := &stubUserStore{user: models.User{
		IDUser:            "u1",
		PassengerFullName: "Ivan Petrov",
		PassengerPhone:    "+7 912 345-67-89",
		PassengerEmail:    "ivan@gmail.com",
	}}

	h := BookingHandler{Routes: routes, Bookings: bookings, Users: users}
	r := gin.New()
	r.GET("/booking-tickets", h.List)
	r.POST("/booking-tickets", h.Create)
	r.GET("/booking-tickets/:id", h.GetByID)
	r.DELETE("/booking-tickets/:id", h.Cancel)
	return r, routes, bookings
}

func upcomingRoute(available int) models.Route {
	dep := time.Now().Add(2 * time.Hour)
	return models.Route{
		IDRoute:              "r1",
		TransportType:        models.TransportType{IDTransportType: "t1", TransportType: "Bus"},
		DepartureCity:        models.City{IDCity: "c1", CityName: "Moscow"},
		DestinationCity:      models.City{IDCity: "c2", CityName: "Kazan"},
		DepartureTime:        dep,
		ArrivalTime:          dep.Add(5 * time.Hour),
		TotalNumberSeats:     40,
		NumberAvailableSeats: available,
	}
}

func postBooking(t *testing.T, r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/booking-tickets", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBookingForm() url.Values {
	return url.Values{
		"routeId":           {"r1"},
		"passengerFullName": {"Ivan Petrov"},
		"passengerPhone":    {"+7 912 345-67-89"},
		"passengerEmail":    {"ivan@gmail.com"},
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, routes, _ := bookingTestServer(upcomingRoute(5))

	w := postBooking(t, r, validBookingForm())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var booking models.BookingTicket
	if err := json.Unmarshal(w.Body.Bytes(), &booking); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if booking.IDBooking == "" || booking.Route.IDRoute != "r1" {
		t.Errorf("unexpected booking payload: %+v", booking)
	}
	if routes.route.NumberAvailableSeats != 4 {
		t.Errorf("available seats = %d, want 4", routes.route.NumberAvailableSeats)
	}
}

func TestCreateBookingEndpointBadPhone(t *testing.T) {
	r, routes, _ := bookingTestServer(upcomingRoute(5))

	form := validBookingForm()
	form.Set("passengerPhone", "89123456789")
	w := postBooking(t, r, form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "validation_error" {
		t.Errorf("code = %q, want validation_error", resp.Code)
	}
	if resp.Error != "invalid phone format, use: +7 XXX XXX-XX-XX" {
		t.Errorf("error = %q", resp.Error)
	}
	if routes.route.NumberAvailableSeats != 5 {
		t.Errorf("rejected request touched the counter: %d", routes.route.NumberAvailableSeats)
	}
}

func TestCreateBookingEndpointNoSeats(t *testing.T) {
	r, _, _ := bookingTestServer(upcomingRoute(0))

	w := postBooking(t, r, validBookingForm())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "state_error" {
		t.Errorf("code = %q, want state_error", resp.Code)
	}
}

func TestCreateBookingEndpointUnknownRoute(t *testing.T) {
	r, _, _ := bookingTestServer(upcomingRoute(5))

	form := validBookingForm()
	form.Set("routeId", "r404")
	w := postBooking(t, r, form)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetBookingEndpointNotFound(t *testing.T) {
	r, _, _ := bookingTestServer(upcomingRoute(5))

	req := httptest.NewRequest(http.MethodGet, "/booking-tickets/b999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "booking with ID b999 not found" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestCancelBookingEndpoint(t *testing.T) {
	r, routes, bookings := bookingTestServer(upcomingRoute(5))

	if w := postBooking(t, r, validBookingForm()); w.Code != http.StatusCreated {
		t.Fatalf("setup booking failed: %d %s", w.Code, w.Body.String())
	}
	var id string
	for k := range bookings.bookings {
		id = k
	}

	req := httptest.NewRequest(http.MethodDelete, "/booking-tickets/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if routes.route.NumberAvailableSeats != 5 {
		t.Errorf("available seats = %d after cancel, want 5", routes.route.NumberAvailableSeats)
	}

	// Cancelling again is a 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second cancel status = %d, want 404", w.Code)
	}
}

func TestListBookingsEndpointEmpty(t *testing.T) {
	r, _, _ := bookingTestServer(upcomingRoute(5))

	req := httptest.NewRequest(http.MethodGet, "/booking-tickets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for empty list", w.Code)
	}
}
