package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/abhisek/skillpath/internal/logger"
)

// RateLimiter is a fixed-window limiter backed by redis. It protects the
// generation endpoints, which each burn an LLM call. A nil client disables
// limiting (dev and test setups without redis).
type RateLimiter struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRateLimiter creates a rate limiter on the given redis client.
func NewRateLimiter(client *redis.Client, log *logger.Logger) *RateLimiter {
	return &RateLimiter{client: client, log: log.With("component", "ratelimit")}
}

// Limit allows at most limit requests per window per caller. Authenticated
// callers are keyed by user ID, anonymous ones by client IP.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if id, ok := c.Get(ctxUserID); ok {
			if userID, ok := id.(uuid.UUID); ok {
				caller = userID.String()
			}
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, caller)

		count, err := rl.client.Incr(c, key).Result()
		if err != nil {
			// Redis trouble must not take the API down.
			rl.log.Warn("rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.client.TTL(c, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			respondError(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests, slow down")
			return
		}

		c.Next()
	}
}
