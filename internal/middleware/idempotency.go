package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-digistore-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	CtxIdempotencyLockKey  = "idempotency_lock_key"
	CtxIdempotencyCacheKey = "idempotency_cache_key"

	idempotencyLockTTL  = 30 * time.Second
	IdempotencyCacheTTL = 24 * time.Hour
)

// Idempotency replays a cached success for a repeated Idempotency-Key and
// refuses a duplicate while the first request is still running. The handler
// owns writing the cache and releasing the lock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || len(key) > 128 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		subject := UserID(c)
		if subject == "" {
			subject = c.ClientIP()
		}
		cacheKey := "idem:resp:" + subject + ":" + key
		lockKey := "idem:lock:" + subject + ":" + key

		cached, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			c.Header("Idempotent-Replayed", "true")
			response.Success(c, http.StatusCreated, json.RawMessage(cached), nil)
			c.Abort()
			return
		}

		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			// fail open, same as the rate limiter
			c.Next()
			return
		}
		if !ok {
			abortWithError(c, ErrRequestInFlight)
			return
		}

		c.Set(CtxIdempotencyLockKey, lockKey)
		c.Set(CtxIdempotencyCacheKey, cacheKey)
		c.Next()
	}
}
