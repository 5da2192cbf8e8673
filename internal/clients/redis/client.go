package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"referral-server/internal/config"
	"referral-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialized = errors.New("redis client not initialized")

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

// Client wraps the Redis client with observability. A nil *Client is valid and
// reports itself as disabled.
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. It returns nil without error when Redis is disabled.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	), "successfully connected to Redis")

	return Wrap(client, logger), nil
}

// Wrap adapts an existing go-redis client.
func Wrap(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if !c.IsEnabled() {
		return nil
	}
	return c.client.Close()
}

// Get returns the value stored at key, or Nil when it does not exist
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if !c.IsEnabled() {
		return "", ErrNotInitialized
	}
	return c.client.Get(ctx, key).Result()
}

// Set stores value at key with an expiration. Zero means no expiration.
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Incr atomically increments the integer stored at key
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if !c.IsEnabled() {
		return 0, ErrNotInitialized
	}
	return c.client.Incr(ctx, key).Result()
}

// SlidingWindowAdd trims entries older than windowStart from the sorted set at key,
// records member at now and returns the number of entries in the window before the
// add along with the score of the oldest one. The sequence runs in one pipeline.
func (c *Client) SlidingWindowAdd(ctx context.Context, key string, windowStart, now time.Time, member string, ttl time.Duration) (int64, time.Time, error) {
	if !c.IsEnabled() {
		return 0, time.Time{}, ErrNotInitialized
	}

	pipe := c.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixMilli()))
	card := pipe.ZCard(ctx, key)
	oldest := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	var oldestAt time.Time
	if entries := oldest.Val(); len(entries) > 0 {
		oldestAt = time.UnixMilli(int64(entries[0].Score))
	}
	return card.Val(), oldestAt, nil
}

// ZRem removes members from a sorted set
func (c *Client) ZRem(ctx context.Context, key string, members ...interface{}) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.ZRem(ctx, key, members...).Err()
}
