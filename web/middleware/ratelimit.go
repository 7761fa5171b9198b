package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"userhub/logger"
	"userhub/web/cache"
)

// RateLimitConfig configures the fixed-window request limiter.
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
}

// DefaultRateLimitConfig limits per client IP.
func DefaultRateLimitConfig(requestsPerMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit returns a redis-backed fixed-window limiter. Counters live in
// the same redis the sessions use; when redis itself fails the request is
// let through rather than blocking all logins.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + config.KeyFunc(c) + ":" + c.Request.URL.Path

		count, err := cache.Incr(key)
		if err != nil {
			logger.Warning("rate limit increment failed:", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := cache.Expire(key, time.Minute); err != nil {
				logger.Warning("rate limit expire failed:", err)
			}
		}

		if count > int64(config.RequestsPerMinute) {
			logger.Warningf("rate limit exceeded for %s on %s (count: %d)", config.KeyFunc(c), c.Request.URL.Path, count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many attempts. Please try again later.",
			})
			return
		}

		remaining := int64(config.RequestsPerMinute) - count
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Next()
	}
}
