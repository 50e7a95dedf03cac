package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger attaches a request-scoped logger to the request context and
// logs each finished request.
func RequestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		reqLogger := logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := reqLogger.Info()
		if status >= http.StatusInternalServerError {
			event = reqLogger.Error()
		} else if status >= http.StatusBadRequest {
			event = reqLogger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", auth.GetUserID(c)).
			Msg("request")
	}
}

// Recovery turns panics into a logged 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// RateLimit rejects requests over the limit with 429. Requests are keyed by
// the acting user id when the header holds a valid UUID, otherwise by client
// IP. A nil limiter disables the check, and limiter errors let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := rateLimitKey(c)

		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if id, err := uuid.Parse(strings.TrimSpace(c.GetHeader(auth.UserIDHeader))); err == nil {
		return "user:" + id.String()
	}
	return "ip:" + c.ClientIP()
}
