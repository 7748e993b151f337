package server

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/ratelimit"
)

// RateLimitMiddleware throttles per client IP and route. Redis being down
// fails open; throttling is protection, not a correctness guarantee.
func RateLimitMiddleware(limiter *ratelimit.RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), c.ClientIP(), c.FullPath())
		if err != nil {
			c.Next()
			return
		}
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			AbortWithError(c, fmt.Errorf("%w: retry later", ErrRateLimited))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Next()
	}
}
