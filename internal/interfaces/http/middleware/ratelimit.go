package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/infrastructure/ratelimit"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// LoginRateLimit throttles credential-guessing by client IP. When the
// limiter backend is unavailable the request is allowed; sign-in staying up
// matters more than the throttle.
func LoginRateLimit(limiter ratelimit.RateLimiter, perMinute int, log logger.Interface) gin.HandlerFunc {
	cfg := ratelimit.RateLimitConfig{
		RequestsPerMinute: perMinute,
		RequestsPerHour:   perMinute * 20,
	}

	return func(c *gin.Context) {
		allowed, err := limiter.Allow("login:"+c.ClientIP(), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(), "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests,
				"too many login attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
