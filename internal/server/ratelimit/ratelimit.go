// Package ratelimit provides the stores behind echo's rate limiter
// middleware: an in-process token bucket, or a fixed-window counter kept in
// Redis and shared by every instance.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const keyPrefix = "usersvc:ratelimit:"

// Counter is the part of a redis client used by RedisStore.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisStore allows up to limit requests per identifier in each window.
// Redis errors are logged and the request is allowed.
type RedisStore struct {
	client  Counter
	limit   int64
	window  time.Duration
	timeout time.Duration
	logger  logging.Logger
	now     func() time.Time
}

func NewRedisStore(client Counter, limit int64, window time.Duration, l logging.Logger) *RedisStore {
	return &RedisStore{
		client:  client,
		limit:   limit,
		window:  window,
		timeout: 100 * time.Millisecond,
		logger:  l.With("module", "ratelimit"),
		now:     time.Now,
	}
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	slot := s.now().UnixNano() / int64(s.window)
	key := fmt.Sprintf("%s%s:%d", keyPrefix, identifier, slot)

	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn(ctx, "rate limit counter unavailable", "error", err)
		return true, nil
	}

	if n == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.Warn(ctx, "rate limit expire failed", "key", key, "error", err)
		}
	}

	return n <= s.limit, nil
}

// NewStore picks the store for the configured limits. It returns nil when
// rps is not positive, meaning no rate limiting. With a redis client, burst
// requests are allowed per burst/rps window.
func NewStore(rps float64, burst int, client Counter, l logging.Logger) middleware.RateLimiterStore {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = int(math.Max(1, math.Ceil(rps)))
	}

	if client == nil {
		return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		})
	}

	window := time.Duration(float64(burst) / rps * float64(time.Second))
	if window < time.Second {
		window = time.Second
	}
	return NewRedisStore(client, int64(burst), window, l)
}
