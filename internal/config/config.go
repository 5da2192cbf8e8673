package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

const (
	StorageDriverHTTP       = "http"
	StorageDriverFilesystem = "filesystem"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Server    ServerConfig

	// Warnings lists configuration problems that do not stop the server.
	// The affected remote calls fail at request time instead.
	Warnings []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL           string
	Host          string
	Username      string
	Password      string
	Name          string
	RunMigrations bool
}

// StorageConfig holds avatar blob storage settings
type StorageConfig struct {
	Driver         string
	URL            string
	Key            string
	Bucket         string
	Dir            string
	PublicBaseURL  string
	AvatarMaxBytes int64
}

// CacheConfig holds listing cache settings
type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig holds change event settings. Publishing is off when Brokers is empty.
// InstanceID names this replica's cache consumer group and must stay the same
// across restarts of one replica.
type KafkaConfig struct {
	Brokers    string
	Topic      string
	InstanceID string
}

// RateLimitConfig holds per client mutation limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// Load reads environment variables into a Config. Missing service credentials are
// reported through Config.Warnings; only malformed values are errors.
func Load() (*Config, error) {
	cfg := &Config{}

	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			cfg.warn(fmt.Sprintf("env.local not loaded: %v", err))
		}
	}

	var err error

	// Database configuration
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		for _, item := range []struct {
			key    string
			target *string
		}{
			{"DB_HOST", &cfg.Database.Host},
			{"DB_USERNAME", &cfg.Database.Username},
			{"DB_PASSWORD", &cfg.Database.Password},
			{"DB_NAME", &cfg.Database.Name},
		} {
			if *item.target, err = requireEnv(item.key); err != nil {
				cfg.warn(fmt.Sprintf("database configuration missing: %v", err))
			}
		}
	}
	if cfg.Database.RunMigrations, err = parseBool("RUN_MIGRATIONS", "true"); err != nil {
		return nil, err
	}

	// Storage configuration
	cfg.Storage.URL = strings.TrimRight(os.Getenv("STORAGE_URL"), "/")
	cfg.Storage.Key = os.Getenv("STORAGE_KEY")
	cfg.Storage.Bucket = getEnvWithDefault("STORAGE_BUCKET", "avatars")
	cfg.Storage.Dir = getEnvWithDefault("STORAGE_DIR", "./data/storage")

	defaultDriver := StorageDriverFilesystem
	if cfg.Storage.URL != "" {
		defaultDriver = StorageDriverHTTP
	}
	cfg.Storage.Driver = getEnvWithDefault("STORAGE_DRIVER", defaultDriver)
	switch cfg.Storage.Driver {
	case StorageDriverHTTP:
		if cfg.Storage.URL == "" {
			cfg.warn("storage configuration missing: STORAGE_URL is not set")
		} else if _, err := url.ParseRequestURI(cfg.Storage.URL); err != nil {
			return nil, fmt.Errorf("failed to parse STORAGE_URL: %w", err)
		}
		if cfg.Storage.Key == "" {
			cfg.warn("storage configuration missing: STORAGE_KEY is not set")
		}
	case StorageDriverFilesystem:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Storage.AvatarMaxBytes, err = parseInt64("AVATAR_MAX_BYTES", "5242880"); err != nil {
		return nil, err
	}

	// Server configuration
	if cfg.Server.Port, err = parseInt("SERVER_PORT", "8080"); err != nil {
		return nil, err
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	cfg.Storage.PublicBaseURL = strings.TrimRight(
		getEnvWithDefault("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)), "/")

	// Redis configuration
	if cfg.Redis.Enabled, err = parseBool("REDIS_ENABLED", "false"); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = parseInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = parseInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// Cache configuration
	cfg.Cache.Driver = getEnvWithDefault("CACHE_DRIVER", CacheDriverMemory)
	switch cfg.Cache.Driver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		if !cfg.Redis.Enabled {
			cfg.warn("CACHE_DRIVER=redis requires REDIS_ENABLED=true, falling back to memory")
			cfg.Cache.Driver = CacheDriverMemory
		}
	default:
		return nil, fmt.Errorf("unsupported CACHE_DRIVER %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL, err = time.ParseDuration(getEnvWithDefault("CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("failed to parse CACHE_TTL: %w", err)
	}

	// Kafka configuration
	cfg.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "referral-events")
	cfg.Kafka.InstanceID = os.Getenv("INSTANCE_ID")
	if cfg.Kafka.InstanceID == "" {
		if cfg.Kafka.InstanceID, err = os.Hostname(); err != nil {
			return nil, fmt.Errorf("failed to resolve INSTANCE_ID from hostname: %w", err)
		}
	}

	// Rate limit configuration
	if cfg.RateLimit.RequestsPerMinute, err = parseInt("RATE_LIMIT_RPM", "60"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	userInfo := url.UserPassword(c.Username, c.Password)
	return fmt.Sprintf("postgres://%s@%s/%s", userInfo.String(), host, c.Name)
}

// CacheGroupID returns the consumer group used by this replica's cache consumer
func (c *KafkaConfig) CacheGroupID() string {
	return "referral-server-cache-" + c.InstanceID
}

// BrokerList splits KAFKA_BROKERS into individual addresses
func (c *KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func parseInt64(key, defaultValue string) (int64, error) {
	v, err := strconv.ParseInt(getEnvWithDefault(key, defaultValue), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func parseBool(key, defaultValue string) (bool, error) {
	v, err := strconv.ParseBool(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
