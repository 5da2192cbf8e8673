package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"referral-server/internal/clients/redis"
	"referral-server/internal/store"
)

const (
	redisKeyPrefix     = "referral-server:listing:"
	redisGenerationKey = redisKeyPrefix + "generation"
)

// Redis is a listing cache shared by every replica. The generation is a
// counter in Redis so an invalidation on one replica is seen by all of them.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis backed cache whose entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Generation(ctx context.Context) (uint64, error) {
	v, err := r.client.Get(ctx, redisGenerationKey)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	generation, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cache generation: %w", err)
	}
	return generation, nil
}

func (r *Redis) GetPage(ctx context.Context, generation uint64, key PageKey) ([]store.Referral, bool, error) {
	var referrals []store.Referral
	ok, err := r.get(ctx, generation, key.String(), &referrals)
	return referrals, ok, err
}

func (r *Redis) SetPage(ctx context.Context, generation uint64, key PageKey, referrals []store.Referral) error {
	return r.set(ctx, generation, key.String(), referrals)
}

func (r *Redis) GetCount(ctx context.Context, generation uint64, search string) (int, bool, error) {
	var count int
	ok, err := r.get(ctx, generation, countKey(search), &count)
	return count, ok, err
}

func (r *Redis) SetCount(ctx context.Context, generation uint64, search string, count int) error {
	return r.set(ctx, generation, countKey(search), count)
}

// Invalidate bumps the shared generation. Old entries age out through their TTL.
func (r *Redis) Invalidate(ctx context.Context) error {
	if _, err := r.client.Incr(ctx, redisGenerationKey); err != nil {
		return fmt.Errorf("failed to invalidate listing cache: %w", err)
	}
	return nil
}

func (r *Redis) get(ctx context.Context, generation uint64, key string, dest interface{}) (bool, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+entryKey(generation, key))
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if err := json.Unmarshal([]byte(v), dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

func (r *Redis) set(ctx context.Context, generation uint64, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+entryKey(generation, key), data, r.ttl); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
