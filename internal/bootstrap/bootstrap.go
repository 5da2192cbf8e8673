package bootstrap

import (
	"context"
	"fmt"

	"referral-server/internal/apierrors"
	"referral-server/internal/cache"
	kafkaClient "referral-server/internal/clients/kafka"
	redisClient "referral-server/internal/clients/redis"
	"referral-server/internal/clients/storage"
	"referral-server/internal/config"
	"referral-server/internal/events"
	"referral-server/internal/events/consumers"
	"referral-server/internal/observability"
	"referral-server/internal/ratelimit"
	referralHandler "referral-server/internal/referral/handler"
	referralProcessor "referral-server/internal/referral/processor"
	"referral-server/internal/store"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   store.Store
	Storage storage.Storage
	Cache   cache.Listing
	Logger  *observability.Logger

	// Handlers
	ReferralHandler referralHandler.Handler
	RateLimiter     *ratelimit.Service

	// Background consumers
	CacheConsumer *consumers.CacheConsumer

	// Clients (for cleanup)
	Redis         *redisClient.Client
	KafkaProducer *kafkaClient.Producer
	KafkaConsumer *kafkaClient.Consumer
}

// Initialize sets up all application dependencies. Only configuration that cannot
// be used at all is an error; unreachable services degrade at request time.
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}
	apierrors.SetLogger(logger)

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.RunMigrations {
		if err := deps.Store.ApplyMigrations(ctx); err != nil {
			logger.Error(ctx, "failed to apply migrations, continuing without them", err)
		}
	}

	// Initialize redis, shared by the listing cache and the rate limiter
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Error(ctx, "failed to connect to redis, continuing without it", err)
		deps.Redis = nil
	}

	deps.Cache = cache.New(cfg.Cache, deps.Redis, logger)

	deps.Storage, err = storage.New(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize Kafka clients
	brokers := cfg.Kafka.BrokerList()
	if len(brokers) > 0 {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)

		// A per-process cache goes stale when another replica mutates, so every
		// replica follows the topic in its own group, named after its instance id.
		if cfg.Cache.Driver == config.CacheDriverMemory {
			deps.KafkaConsumer = kafkaClient.NewConsumer(kafkaClient.ConsumerConfig{
				Brokers: brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.CacheGroupID(),
			}, logger)
			deps.CacheConsumer = consumers.NewCacheConsumer(deps.KafkaConsumer, deps.Cache, logger)
		}
	}
	publisher := events.NewPublisher(deps.KafkaProducer, logger)

	// Initialize referral processor and handler
	referralProc := referralProcessor.New(&deps.Store, deps.Storage, deps.Cache, publisher, logger)
	deps.ReferralHandler = referralHandler.New(referralProc, logger, cfg.Storage.AvatarMaxBytes)

	deps.RateLimiter = ratelimit.NewService(deps.Redis, cfg.RateLimit.RequestsPerMinute, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka consumer", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
