package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	deferredKey         = "payments:deferred"
	deferredAttemptsKey = "payments:deferred:attempts"
	maxDeferredAttempts = 10
	// safety net for numbers that are never reconciled nor exhausted
	deferredAttemptsTTL = 24 * time.Hour
)

var ErrDeferredExhausted = errors.New("deferred notification exceeded retry budget")

// DeferredQueue holds order numbers whose notification arrived before the
// order was visible. The worker drains it through the status API.
//
//go:generate mockgen -source=order_deferred.go -destination=../mock/order/order_deferred_mock.go -package=mock
type DeferredQueue interface {
	Defer(ctx context.Context, orderNumber string, due time.Time) error
	Due(ctx context.Context, now time.Time, limit int64) ([]string, error)
	// Clear forgets the retry count once the number has been reconciled.
	Clear(ctx context.Context, orderNumber string) error
}

type redisDeferredQueue struct {
	rdb *redis.Client
}

func NewRedisDeferredQueue(rdb *redis.Client) DeferredQueue {
	return &redisDeferredQueue{rdb: rdb}
}

func (q *redisDeferredQueue) Defer(ctx context.Context, orderNumber string, due time.Time) error {
	pipe := q.rdb.TxPipeline()
	incr := pipe.HIncrBy(ctx, deferredAttemptsKey, orderNumber, 1)
	pipe.Expire(ctx, deferredAttemptsKey, deferredAttemptsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("count deferred attempts: %w", err)
	}
	attempts := incr.Val()
	if attempts > maxDeferredAttempts {
		q.rdb.HDel(ctx, deferredAttemptsKey, orderNumber)
		return ErrDeferredExhausted
	}

	return q.rdb.ZAdd(ctx, deferredKey, redis.Z{
		Score:  float64(due.Unix()),
		Member: orderNumber,
	}).Err()
}

// Due claims up to limit entries whose time has come. ZRem decides the
// claim, so two workers never reconcile the same number.
func (q *redisDeferredQueue) Due(ctx context.Context, now time.Time, limit int64) ([]string, error) {
	members, err := q.rdb.ZRangeByScore(ctx, deferredKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, err
	}

	claimed := make([]string, 0, len(members))
	for _, m := range members {
		n, err := q.rdb.ZRem(ctx, deferredKey, m).Result()
		if err != nil {
			return claimed, err
		}
		if n == 1 {
			claimed = append(claimed, m)
		}
	}
	return claimed, nil
}

func (q *redisDeferredQueue) Clear(ctx context.Context, orderNumber string) error {
	return q.rdb.HDel(ctx, deferredAttemptsKey, orderNumber).Err()
}
