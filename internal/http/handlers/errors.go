package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/domain"
	"transportbooking/internal/http/middleware"
	"transportbooking/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Validation and
// state violations are client errors; anything unclassified is reported as
// a generic 500 without leaking internals.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsState(err):
		respondError(c, http.StatusBadRequest, "state_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		// Internal errors carry wrapped storage detail; log it server-side,
		// the response body stays generic.
		if domain.IsInternal(err) {
			utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}
