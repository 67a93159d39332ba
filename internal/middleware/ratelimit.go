package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/observability"
	"github.com/yigit/curricula/internal/pkg/cache"
)

// Limiter counts requests per client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (cache.Decision, error)
}

// RateLimit rejects clients that exceed the limiter's budget with 429. When
// the limiter itself fails the request is let through.
func RateLimit(limiter Limiter, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			observability.ObserveRateLimited()
			retry := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			AbortWithError(c, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Too many requests")
			return
		}

		c.Next()
	}
}
