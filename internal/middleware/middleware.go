// Package middleware carries the request-scoped plumbing: correlation ids,
// structured access logging, and panic recovery.
package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shemankubana/IncludEd/internal/handlers"
	"github.com/shemankubana/IncludEd/internal/platform/logger"
	"github.com/shemankubana/IncludEd/internal/platform/requestid"
)

// RequestID honors an inbound X-Request-Id or mints one, echoes it on the
// response, and threads it through the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestid.Header))
		if id == "" {
			id = requestid.New()
		}
		ctx := requestid.WithContext(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestid.Header, id)
		c.Next()
	}
}

// MaxBytes caps request bodies; oversized payloads fail at decode time
// instead of buffering unbounded input.
func MaxBytes(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// AccessLog emits one structured line per request.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.With(
			"request_id", requestid.FromContext(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		).Info("http request")
	}
}

// Recover turns panics into 500s instead of dropped connections.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.With(
					"request_id", requestid.FromContext(c.Request.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.ErrorEnvelope{
					Error: handlers.APIError{Message: "internal server error", Code: "internal_error"},
				})
			}
		}()
		c.Next()
	}
}
