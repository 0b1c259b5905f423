package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
	"transportbooking/internal/services"
)

type CityHandler struct {
	Cities repositories.CityRepository
}

func (h CityHandler) service(c *gin.Context) services.CityService {
	return services.CityService{
		Cities:    h.Cities,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /cities
func (h CityHandler) List(c *gin.Context) {
	cities, err := h.service(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(cities) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no cities found")
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GET /cities/:id
func (h CityHandler) GetByID(c *gin.Context) {
	city, err := h.service(c).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

// POST /cities
func (h CityHandler) Create(c *gin.Context) {
	city, err := h.service(c).Create(c.Request.Context(), formValue(c, "cityName"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

// PUT /cities/:id
func (h CityHandler) Update(c *gin.Context) {
	city, err := h.service(c).Update(c.Request.Context(), c.Param("id"), formValue(c, "cityName"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

// DELETE /cities/:id
func (h CityHandler) Delete(c *gin.Context) {
	if err := h.service(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "city successfully deleted"})
}
