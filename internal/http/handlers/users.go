package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
	"transportbooking/internal/services"
)

type UserHandler struct {
	Users repositories.UserRepository
}

func (h UserHandler) service(c *gin.Context) services.UserService {
	return services.UserService{
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /users
func (h UserHandler) List(c *gin.Context) {
	users, err := h.service(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(users) == 0 {
		respondError(c, http.StatusNotFound, "not_found", "no users found")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/:id
func (h UserHandler) GetByID(c *gin.Context) {
	user, err := h.service(c).GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /users/user-by-email?email=
func (h UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.service(c).GetByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /users
func (h UserHandler) Create(c *gin.Context) {
	user, err := h.service(c).Create(c.Request.Context(), services.CreateUserInput{
		PassengerFullName: formValue(c, "passengerFullName"),
		PassengerPhone:    formValue(c, "passengerPhone"),
		PassengerEmail:    formValue(c, "passengerEmail"),
		DateOfBirth:       formValue(c, "dateOfBirth"),
		Password:          formValue(c, "password"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /users/:id
func (h UserHandler) Update(c *gin.Context) {
	user, err := h.service(c).Update(c.Request.Context(), c.Param("id"), services.UpdateUserInput{
		PassengerFullName: formValue(c, "passengerFullName"),
		PassengerPhone:    formValue(c, "passengerPhone"),
		PassengerEmail:    formValue(c, "passengerEmail"),
		DateOfBirth:       formValue(c, "dateOfBirth"),
		Password:          formValue(c, "password"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id
func (h UserHandler) Delete(c *gin.Context) {
	if err := h.service(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user successfully deleted"})
}
