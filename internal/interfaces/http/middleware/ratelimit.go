package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orbit/internal/infrastructure/ratelimit"
	"orbit/internal/shared/logger"
	"orbit/internal/shared/utils"
)

// RateLimit applies a per-client-IP sliding window limit. When the limiter
// backend is unreachable requests pass through unlimited.
func RateLimit(limiter ratelimit.RateLimiter, cfg ratelimit.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.ClientIP(), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
