// Package cache holds the optional redis-backed cache for admin order
// stats. Stats are always recomputed by aggregation queries; the cache
// only short-circuits repeat reads and is explicitly invalidated on
// every order write.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	orderStatsKey = "shopforge:stats:orders"
	orderStatsTTL = 5 * time.Minute
)

type StatsCache interface {
	GetOrderStats(ctx context.Context, dest any) bool
	SetOrderStats(ctx context.Context, stats any)
	InvalidateOrderStats(ctx context.Context)
}

type redisCache struct {
	client *redis.Client
}

func NewRedis(addr string) StatsCache {
	return &redisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *redisCache) GetOrderStats(ctx context.Context, dest any) bool {
	b, err := r.client.Get(ctx, orderStatsKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (r *redisCache) SetOrderStats(ctx context.Context, stats any) {
	b, err := json.Marshal(stats)
	if err != nil {
		return
	}
	// best effort: a failed write just means the next read recomputes
	_ = r.client.Set(ctx, orderStatsKey, b, orderStatsTTL).Err()
}

func (r *redisCache) InvalidateOrderStats(ctx context.Context) {
	_ = r.client.Del(ctx, orderStatsKey).Err()
}

// Nop is used when REDIS_ADDR is unset; every stats read recomputes.
type Nop struct{}

func (Nop) GetOrderStats(context.Context, any) bool { return false }
func (Nop) SetOrderStats(context.Context, any)      {}
func (Nop) InvalidateOrderStats(context.Context)    {}
