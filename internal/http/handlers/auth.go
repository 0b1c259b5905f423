package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/domain"
	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
	"transportbooking/internal/services"
	"transportbooking/internal/utils"
	"transportbooking/internal/validation"
)

type AuthHandler struct {
	Users     repositories.UserRepository
	JWTSecret []byte
}

func (h AuthHandler) service(c *gin.Context) services.UserService {
	return services.UserService{
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /auth/login
func (h AuthHandler) Login(c *gin.Context) {
	fullName := formValue(c, "passengerFullName")
	email := formValue(c, "passengerEmail")
	password := formValue(c, "password")

	if fullName == "" || email == "" || password == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "all fields must be filled in")
		return
	}
	if !validation.IsValidEmailFormat(email) {
		respondError(c, http.StatusBadRequest, "validation_error",
			"invalid email format, use: name@domain (mail.ru, inbox.ru, yandex.ru, gmail.com)")
		return
	}

	user, err := h.service(c).VerifyCredentials(c.Request.Context(), fullName, email, password)
	if err != nil {
		if domain.IsValidation(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		RespondDomainError(c, err)
		return
	}

	token, err := utils.GenerateToken(h.JWTSecret, user.PassengerEmail)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user="+user.IDUser)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /auth/register
func (h AuthHandler) Register(c *gin.Context) {
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
