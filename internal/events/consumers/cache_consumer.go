package consumers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"referral-server/internal/clients/kafka"
	"referral-server/internal/observability"
)

// Invalidator drops cached listing results.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// EventSource delivers change events to a handler until ctx is done.
type EventSource interface {
	ConsumeEvents(ctx context.Context, handler func(context.Context, kafka.EventMessage) error) error
}

// CacheConsumer invalidates this process's listing cache whenever any replica
// publishes a referral change.
type CacheConsumer struct {
	source     EventSource
	cache      Invalidator
	logger     *observability.Logger
	attempts   int
	retryDelay time.Duration
}

// NewCacheConsumer creates a new CacheConsumer
func NewCacheConsumer(source EventSource, cache Invalidator, logger *observability.Logger) *CacheConsumer {
	return &CacheConsumer{
		source:     source,
		cache:      cache,
		logger:     logger,
		attempts:   3,
		retryDelay: 200 * time.Millisecond,
	}
}

// Start blocks consuming events until ctx is cancelled.
func (c *CacheConsumer) Start(ctx context.Context) error {
	c.logger.Info(ctx, "Starting listing cache consumer")
	return c.source.ConsumeEvents(ctx, c.handle)
}

func (c *CacheConsumer) handle(ctx context.Context, event kafka.EventMessage) error {
	if !strings.HasPrefix(event.Type, "referral.") {
		return nil
	}
	// The source does not redeliver failed events, so retry here.
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = c.cache.Invalidate(ctx); err == nil {
			return nil
		}
		c.logger.WarnWithError(ctx, fmt.Sprintf("failed to invalidate listing cache (attempt %d)", attempt), err)
		if attempt == c.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	c.logger.Error(ctx, "giving up invalidating listing cache", err)
	return err
}
