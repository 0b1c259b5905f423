package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
	"transportbooking/internal/services"
)

type TransportTypeHandler struct {
	Types repositories.TransportTypeRepository
}

func (h TransportTypeHandler) service(c *gin.Context) services.TransportTypeService {
	return services.TransportTypeService{
		Types:     h.Types,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /transport-types
func (h TransportTypeHandler) List(c *gin.Context) {
	types, err := h.service(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(types) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no transport types found")
		return
	}
	c.JSON(http.StatusOK, types)
}

// GET /transport-types/:id
func (h TransportTypeHandler) GetByID(c *gin.Context) {
	tt, err := h.service(c).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

// POST /transport-types
func (h TransportTypeHandler) Create(c *gin.Context) {
	tt, err := h.service(c).Create(c.Request.Context(), formValue(c, "transportType"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tt)
}

// PUT /transport-types/:id
func (h TransportTypeHandler) Update(c *gin.Context) {
	tt, err := h.service(c).Update(c.Request.Context(), c.Param("id"), formValue(c, "transportType"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

// DELETE /transport-types/:id
func (h TransportTypeHandler) Delete(c *gin.Context) {
	if err := h.service(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transport type successfully deleted"})
}
