// Package cache holds listing results between explicit invalidations.
//
// Every entry is stored under the generation that was current when its fetch
// started. Invalidate moves to a new generation, so a fetch that began before an
// invalidation can still write its result but that result is never read again.
package cache

import (
	"context"
	"fmt"
	"time"

	"referral-server/internal/clients/redis"
	"referral-server/internal/config"
	"referral-server/internal/observability"
	"referral-server/internal/store"
)

// PageKey identifies one listing page.
type PageKey struct {
	Search   string
	Page     int
	PageSize int
}

func (k PageKey) String() string {
	return fmt.Sprintf("page:%d:%d:%s", k.PageSize, k.Page, k.Search)
}

func countKey(search string) string {
	return "count:" + search
}

// Listing caches list pages and match counts.
type Listing interface {
	Generation(ctx context.Context) (uint64, error)
	GetPage(ctx context.Context, generation uint64, key PageKey) ([]store.Referral, bool, error)
	SetPage(ctx context.Context, generation uint64, key PageKey, referrals []store.Referral) error
	GetCount(ctx context.Context, generation uint64, search string) (int, bool, error)
	SetCount(ctx context.Context, generation uint64, search string, count int) error
	Invalidate(ctx context.Context) error
}

// New returns the cache driver selected by cfg. The redis driver requires a
// connected client; without one it falls back to memory.
func New(cfg config.CacheConfig, redisClient *redis.Client, logger *observability.Logger) Listing {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if cfg.Driver == config.CacheDriverRedis {
		if redisClient.IsEnabled() {
			logger.Info(context.Background(), "listing cache using redis")
			return NewRedis(redisClient, ttl)
		}
		logger.Warn(context.Background(), "redis unavailable, listing cache falling back to memory")
	}
	return NewMemory(ttl)
}
