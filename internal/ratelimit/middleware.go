package ratelimit

import (
	"fmt"
	"math"

	"referral-server/internal/apierrors"
	"referral-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware limiting requests per client IP
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		result := s.Check(ctx, observability.GetRealClientIP(c))

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			s.logger.Warn(ctx, "rate limit exceeded")

			apierrors.RespondWithError(c, apierrors.TooManyRequests("Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}
