package uniqueness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed checker. Fields can be populated
// from environment variables via github.com/caarlos0/env.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL should be in the format "redis://:password@localhost:6379/0"
	KeyPrefix      string        `env:"UNIQUENESS_KEY_PREFIX" envDefault:"taken"`                 // KeyPrefix namespaces the existence keys.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the wait between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connect sequence.
}

// Connect establishes a Redis connection using the provided configuration,
// retrying per RetryAttempts/RetryInterval before giving up.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisChecker answers uniqueness by testing key existence: a value is taken
// when the key "<prefix>:<field>:<value>" exists.
type RedisChecker struct {
	client *redis.Client
	prefix string
}

// NewRedisChecker creates a checker over an established Redis client.
func NewRedisChecker(client *redis.Client, cfg RedisConfig) (*RedisChecker, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}
	return &RedisChecker{client: client, prefix: cfg.KeyPrefix}, nil
}

// IsUnique reports whether no existence key is recorded for the value.
func (r *RedisChecker) IsUnique(ctx context.Context, field, value string) (bool, error) {
	key := fmt.Sprintf("%s:%s:%s", r.prefix, field, value)

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return n == 0, nil
}
