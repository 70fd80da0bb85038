package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/harshsongara/timetable/internal/request"
)

const defaultRateLimit = "10-S"

// RedisRateLimiter holds the Redis client backing the rate limit store.
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter connects to Redis and verifies the connection.
func NewRedisRateLimiter(redisURL string) (*RedisRateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateLimiter{client: client}, nil
}

// Ping checks whether Redis is reachable.
func (r *RedisRateLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisRateLimiter) Close() error {
	return r.client.Close()
}

// RateLimit returns middleware that limits requests per client IP using
// ulule/limiter with a Redis store. The rate uses limiter's formatted
// notation, e.g. "10-S" for ten requests per second.
func RateLimit(redisLimiter *RedisRateLimiter, rateStr string) (func(http.Handler) http.Handler, error) {
	if rateStr == "" {
		rateStr = defaultRateLimit
	}

	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rateStr, err)
	}

	store, err := redisstore.NewStore(redisLimiter.client)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	instance := limiter.New(store, rate)
	keyGetter := func(r *http.Request) string {
		return request.ClientIP(r)
	}

	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))
	return mw.Handler, nil
}
