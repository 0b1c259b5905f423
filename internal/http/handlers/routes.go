package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
	"transportbooking/internal/services"
)

type RouteHandler struct {
	Routes         repositories.RouteRepository
	Cities         repositories.CityRepository
	TransportTypes repositories.TransportTypeRepository
}

func (h RouteHandler) service(c *gin.Context) services.RouteService {
	return services.RouteService{
		Routes:         h.Routes,
		Cities:         h.Cities,
		TransportTypes: h.TransportTypes,
		RequestID:      middleware.GetRequestID(c),
	}
}

// GET /routes
func (h RouteHandler) List(c *gin.Context) {
	routes, err := h.service(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/paginated?page=&size=&minDepartureTime=
func (h RouteHandler) ListPaginated(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "page must be an integer")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "size must be an integer")
		return
	}

	var minDeparture *time.Time
	if raw := c.Query("minDepartureTime"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid minDepartureTime, use 'yyyy-MM-dd HH:mm'")
			return
		}
		minDeparture = &t
	}

	result, err := h.service(c).ListPage(c.Request.Context(), page, size, minDeparture)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /routes/:id
func (h RouteHandler) GetByID(c *gin.Context) {
	route, err := h.service(c).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// GET /routes/transport/:transportType
func (h RouteHandler) ListByTransportType(c *gin.Context) {
	routes, err := h.service(c).ListByTransportType(c.Request.Context(), c.Param("transportType"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/points?departureCity=&destinationCity=
func (h RouteHandler) ListByCityPair(c *gin.Context) {
	routes, err := h.service(c).ListByCityPair(c.Request.Context(), c.Query("departureCity"), c.Query("destinationCity"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/departure/:departureCity
func (h RouteHandler) ListByDepartureCity(c *gin.Context) {
	routes, err := h.service(c).ListByDepartureCity(c.Request.Context(), c.Param("departureCity"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/destination/:destinationCity
func (h RouteHandler) ListByDestinationCity(c *gin.Context) {
	routes, err := h.service(c).ListByDestinationCity(c.Request.Context(), c.Param("destinationCity"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/exactDate?date=dd.MM.yyyy
func (h RouteHandler) ListForExactDate(c *gin.Context) {
	routes, err := h.service(c).ListForExactDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /routes/dateRange?startDate=&endDate=
func (h RouteHandler) ListWithinDateRange(c *gin.Context) {
	routes, err := h.service(c).ListWithinDateRange(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// POST /routes
func (h RouteHandler) Create(c *gin.Context) {
	totalSeats, err := strconv.Atoi(formValue(c, "totalNumberSeats"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "totalNumberSeats must be an integer")
		return
	}
	availableSeats, err := strconv.Atoi(formValue(c, "numberAvailableSeats"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "numberAvailableSeats must be an integer")
		return
	}

	route, err := h.service(c).Create(c.Request.Context(), services.CreateRouteInput{
		TransportType:        formValue(c, "transportType"),
		DepartureCity:        formValue(c, "departureCity"),
		DestinationCity:      formValue(c, "destinationCity"),
		DepartureTime:        formValue(c, "departureTime"),
		ArrivalTime:          formValue(c, "arrivalTime"),
		TotalNumberSeats:     totalSeats,
		NumberAvailableSeats: availableSeats,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

// DELETE /routes/:id
func (h RouteHandler) Delete(c *gin.Context) {
	if err := h.service(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route successfully deleted"})
}
