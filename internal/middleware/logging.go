package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradedesk/internal/auth"
	"tradedesk/internal/logger"
)

const (
	requestIDKey    = "requestID"
	RequestIDHeader = "X-Request-ID"
)

// RequestID returns the id RequestLogging assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging tags each request with an id, echoing a caller-supplied
// X-Request-ID when present, and logs one line per request once it completes.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = newRequestID()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user", auth.ActorName(CurrentPrincipal(c)),
		}
		if c.Writer.Status() >= 500 {
			logger.Get().Errorw("request", fields...)
			return
		}
		logger.Get().Infow("request", fields...)
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
