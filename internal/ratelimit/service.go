package ratelimit

import (
	"context"
	"fmt"
	"time"

	"referral-server/internal/clients/redis"
	"referral-server/internal/observability"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const window = time.Minute

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Service limits mutating requests per client. With Redis enabled the limit is
// shared by every replica; otherwise each replica keeps its own token buckets.
type Service struct {
	redis  *redis.Client
	limit  int
	local  *gocache.Cache
	logger *observability.Logger
	now    func() time.Time
}

// NewService creates a rate limiter allowing requestsPerMinute per client.
// A non-positive limit disables limiting.
func NewService(redisClient *redis.Client, requestsPerMinute int, logger *observability.Logger) *Service {
	return &Service{
		redis:  redisClient,
		limit:  requestsPerMinute,
		local:  gocache.New(2*window, 5*window),
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether requests are limited at all
func (s *Service) Enabled() bool {
	return s != nil && s.limit > 0
}

// Check records one request from client and reports whether it is allowed.
// Redis failures fall back to the local limiter.
func (s *Service) Check(ctx context.Context, client string) Result {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_client", Value: client},
		observability.Field{Key: "rate_limit_rpm", Value: s.limit},
	)

	if s.redis.IsEnabled() {
		result, err := s.checkRedis(ctx, client)
		if err == nil {
			return result
		}
		s.logger.WarnWithError(ctx, "redis rate limit check failed, falling back to local limiter", err)
	}
	return s.checkLocal(client)
}

// checkRedis implements a sliding window over a sorted set of request timestamps
func (s *Service) checkRedis(ctx context.Context, client string) (Result, error) {
	key := fmt.Sprintf("referral-server:rl:%s", client)
	now := s.now()
	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())

	count, oldest, err := s.redis.SlidingWindowAdd(ctx, key, now.Add(-window), now, member, 2*window)
	if err != nil {
		return Result{}, fmt.Errorf("failed to record request: %w", err)
	}

	if int(count) < s.limit {
		return Result{
			Allowed:   true,
			Limit:     s.limit,
			Remaining: s.limit - int(count) - 1,
			ResetAt:   now.Add(window),
		}, nil
	}

	// Rejected requests do not count against the window.
	if err := s.redis.ZRem(ctx, key, member); err != nil {
		s.logger.WarnWithError(ctx, "failed to remove rejected request from window", err)
	}

	resetAt := now.Add(window)
	if !oldest.IsZero() {
		resetAt = oldest.Add(window)
	}
	return Result{
		Allowed:    false,
		Limit:      s.limit,
		ResetAt:    resetAt,
		RetryAfter: max(resetAt.Sub(now), 0),
	}, nil
}

// checkLocal uses one token bucket per client, refilled at limit per minute
func (s *Service) checkLocal(client string) Result {
	now := s.now()
	limiter := s.limiter(client)

	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return Result{
			Allowed:    false,
			Limit:      s.limit,
			ResetAt:    now.Add(delay),
			RetryAfter: delay,
		}
	}

	remaining := int(limiter.TokensAt(now))
	return Result{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: max(remaining, 0),
		ResetAt:   now.Add(window),
	}
}

func (s *Service) limiter(client string) *rate.Limiter {
	if v, ok := s.local.Get(client); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Every(window/time.Duration(s.limit)), s.limit)
	if err := s.local.Add(client, limiter, gocache.DefaultExpiration); err != nil {
		// Another request created it first.
		if v, ok := s.local.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}
