package middleware

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	// LoggerKey holds the request-scoped *log.Logger in the gin context.
	LoggerKey = "logger"
)

// RequestLogger tags every request with an id (the incoming one when it is
// a UUID), puts a request-scoped logger
// into the request context and logs the outcome once the handlers return.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Set(LoggerKey, reqLogger)
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		keyvals := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request", keyvals...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request", keyvals...)
		default:
			reqLogger.Info("request", keyvals...)
		}
	}
}
