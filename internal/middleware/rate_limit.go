package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window counter shared by every API instance
// through redis.
type RateLimiter struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRateLimiter(rdb *redis.Client, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{rdb: rdb, logger: logger.Named("ratelimit")}
}

func (l *RateLimiter) ByIP(name string, limit int64, window time.Duration) gin.HandlerFunc {
	return l.limit(name, limit, window, func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// ByUser keys on the authenticated user and falls back to the client IP
// for guests.
func (l *RateLimiter) ByUser(name string, limit int64, window time.Duration) gin.HandlerFunc {
	return l.limit(name, limit, window, func(c *gin.Context) string {
		if uid := UserID(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	})
}

func (l *RateLimiter) limit(name string, limit int64, window time.Duration, subject func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", name, subject(c), bucket)

		pipe := l.rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			// fail open: a redis outage must not take checkout down with it
			l.logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > limit {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			l.logger.Info("rate limited", zap.String("limiter", name), zap.String("subject", subject(c)))
			abortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
