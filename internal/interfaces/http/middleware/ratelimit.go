package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tourbook/internal/infrastructure/ratelimit"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/logger"
	"tourbook/internal/shared/utils"
)

// WriteRateLimit throttles mutating admin requests per caller, falling back
// to the client IP for anonymous requests.
type WriteRateLimit struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewWriteRateLimit(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, logger logger.Interface) *WriteRateLimit {
	return &WriteRateLimit{
		limiter: limiter,
		config:  config,
		logger:  logger,
	}
}

func (m *WriteRateLimit) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if caller, ok := authorization.GetCaller(c); ok && caller.UserID != "" {
			key = "caller:" + caller.UserID
		}

		allowed, err := m.limiter.Allow(c.Request.Context(), key, m.config)
		if err != nil {
			// Fail open when redis is unavailable.
			m.logger.Warnw("rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}

		if m.config.RequestsPerMinute > 0 {
			used, err := m.limiter.Used(c.Request.Context(), key, time.Minute)
			if err == nil {
				remaining := int64(m.config.RequestsPerMinute) - used
				if remaining < 0 {
					remaining = 0
				}
				c.Header("X-RateLimit-Limit", strconv.Itoa(m.config.RequestsPerMinute))
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}
		}

		if !allowed {
			m.logger.Warnw("rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
