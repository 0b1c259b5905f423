package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints minimal request log including request_id when available.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		user := GetUserEmail(c)
		if user == "" {
			user = "-"
		}
		log.Printf("[HTTP] request_id=%s user=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			GetRequestID(c),
			user,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}
