package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/common"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/logger"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/ratelimit"
)

// RateLimit enforces per-client request limits. This service has no
// authenticated callers, so every request is limited by client IP. A failed
// limiter check fails open.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		identity := c.ClientIP()

		rule := limiter.RuleFor(endpoint, ratelimit.IdentityAnonymous)
		result, err := limiter.Allow(c.Request.Context(), endpoint, identity, rule, ratelimit.IdentityAnonymous)
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("rate limit check failed",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			common.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
