package middleware

import (
	"context"
	"fmt"
	"folio/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Allow counts one hit for id against resource and reports whether it is
// still within limit for the current window.
func Allow(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// NX only sets a TTL on a key that has none, so a window is never
	// extended and a counter can never be left without one.
	var incr *redis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// RateLimit allows limit requests per window for each client IP. When
// Redis is unreachable the request goes through. A limit of zero or less
// disables it.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || rdb == nil {
			c.Next()
			return
		}

		ok, err := Allow(c.Request.Context(), rdb, resource, c.ClientIP(), limit, window)
		if err != nil {
			logger.FromGin(c).Warn("rate limit check failed", zap.String("resource", resource), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
