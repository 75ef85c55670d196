package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRateLimitPrefix = "http:ratelimit:"

// RateCounter counts requests per key in fixed windows
type RateCounter interface {
	// Hit records one request for key. It returns the number of requests
	// seen in the current window and the time left until the window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Close() error
}

// NewRateCounter returns a Redis-backed counter when client is non-nil,
// otherwise an in-memory one
func NewRateCounter(client redis.UniversalClient, logger *zap.Logger) RateCounter {
	if client != nil {
		return NewRedisRateCounter(client, "")
	}
	logger.Warn("redis unavailable, rate limit windows are per instance")
	return NewInMemoryRateCounter(time.Minute)
}

// RedisRateCounter keeps one INCR counter per key and window so replicas
// share the budget
type RedisRateCounter struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisRateCounter creates a counter over an existing client
func NewRedisRateCounter(client redis.UniversalClient, keyPrefix string) *RedisRateCounter {
	if keyPrefix == "" {
		keyPrefix = defaultRateLimitPrefix
	}
	return &RedisRateCounter{client: client, keyPrefix: keyPrefix}
}

// Hit increments the window counter, starting the window on the first request
func (r *RedisRateCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := r.keyPrefix + key
	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("count request: %w", err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("start rate window: %w", err)
		}
		return count, window, nil
	}

	ttl, err := r.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("read rate window: %w", err)
	}
	if ttl < 0 {
		// expiry was lost between INCR and PEXPIRE
		if err := r.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("start rate window: %w", err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// Close is a no-op; the client is owned by the caller
func (r *RedisRateCounter) Close() error {
	return nil
}

type rateWindow struct {
	count   int64
	resetAt time.Time
}

// InMemoryRateCounter is a single-process RateCounter
type InMemoryRateCounter struct {
	mu       sync.Mutex
	windows  map[string]*rateWindow
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewInMemoryRateCounter creates a counter that drops finished windows every cleanupEvery
func NewInMemoryRateCounter(cleanupEvery time.Duration) *InMemoryRateCounter {
	c := &InMemoryRateCounter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.cleanup(cleanupEvery)
	return c
}

// Hit implements RateCounter
func (c *InMemoryRateCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// Close stops the cleanup loop
func (c *InMemoryRateCounter) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

func (c *InMemoryRateCounter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *InMemoryRateCounter) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, w := range c.windows {
		if !now.Before(w.resetAt) {
			delete(c.windows, key)
		}
	}
}

func (c *InMemoryRateCounter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.windows)
}
