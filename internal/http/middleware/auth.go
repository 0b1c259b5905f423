package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transportbooking/internal/utils"
)

const userEmailKey = "user_email"

// RequireAuth rejects requests without a valid Bearer token and stores the
// authenticated passenger email in the context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}
		email, err := utils.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(userEmailKey, email)
		c.Next()
	}
}

// GetUserEmail returns the authenticated passenger email, if any.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get(userEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
