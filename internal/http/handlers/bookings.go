package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/http/middleware"
	"transportbooking/internal/services"
)

// BookingHandler exposes the booking core over HTTP. Stores are injected so
// tests can substitute in-memory doubles for the SQL repositories.
type BookingHandler struct {
	Routes   services.RouteStore
	Bookings services.BookingStore
	Users    services.UserStore
}

func (h BookingHandler) service(c *gin.Context) services.BookingService {
	return services.BookingService{
		Routes:    h.Routes,
		Bookings:  h.Bookings,
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /booking-tickets
func (h BookingHandler) List(c *gin.Context) {
	bookings, err := h.service(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(bookings) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no bookings found")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /booking-tickets/:id
func (h BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.service(c).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /booking-tickets
// Accepts form-encoded parameters, the same contract the desktop client uses.
func (h BookingHandler) Create(c *gin.Context) {
	routeID := formValue(c, "routeId")
	fullName := formValue(c, "passengerFullName")
	phone := formValue(c, "passengerPhone")
	email := formValue(c, "passengerEmail")

	booking, err := h.service(c).Create(c.Request.Context(), routeID, fullName, phone, email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// DELETE /booking-tickets/:id
func (h BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if err := h.service(c).Cancel(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("booking with ID %s successfully cancelled", id)})
}

// GET /booking-tickets/route/:routeId
func (h BookingHandler) ListByRoute(c *gin.Context) {
	bookings, err := h.service(c).ListByRoute(c.Request.Context(), c.Param("routeId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(bookings) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no bookings found for the given route")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /booking-tickets/route/:routeId/phone/:phone
func (h BookingHandler) GetByRouteAndPhone(c *gin.Context) {
	booking, err := h.service(c).GetByRouteAndPhone(c.Request.Context(), c.Param("routeId"), c.Param("phone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /booking-tickets/email/:email
func (h BookingHandler) ListByPassengerEmail(c *gin.Context) {
	bookings, err := h.service(c).ListByPassengerEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(bookings) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no bookings found for the given passenger")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /booking-tickets/:id/e-ticket
func (h BookingHandler) ETicket(c *gin.Context) {
	docs := services.DocsService{
		RequestID: middleware.GetRequestID(c),
		Loader:    h.service(c).GetByID,
	}
	pdf, filename, err := docs.GenerateETicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// formValue reads a POST form field, falling back to the query string so
// both parameter styles the clients send are accepted.
func formValue(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
