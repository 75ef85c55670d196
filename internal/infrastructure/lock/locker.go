package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = time.Minute

// RunLocker runs fn while holding a named lock. fn is skipped, and nil
// returned, when the lock is held elsewhere.
type RunLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// RedisLocker serialises work across instances with bsm/redislock
type RedisLocker struct {
	client *redislock.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a RedisLocker whose locks expire after ttl
func NewRedisLocker(client redis.UniversalClient, prefix string, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	if prefix == "" {
		prefix = "erp:lock:"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client: redislock.New(client),
		prefix: prefix,
		ttl:    ttl,
		logger: logger.Named("lock"),
	}
}

// WithLock obtains key without waiting and releases it when fn returns
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	held, err := l.client.Obtain(ctx, l.prefix+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		l.logger.Info("lock held by another instance, skipping", zap.String("key", key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("obtain lock %s: %w", key, err)
	}
	defer func() {
		// fresh context so a cancelled ctx still frees the key
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := held.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}()
	return fn(ctx)
}

// LocalLocker is the single-instance fallback used when Redis is disabled
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker creates a LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

// WithLock executes fn unless key is already held in this process
func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if _, busy := l.held[key]; busy {
		l.mu.Unlock()
		return nil
	}
	l.held[key] = struct{}{}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}()
	return fn(ctx)
}

// New returns a RedisLocker when client is non-nil, otherwise a LocalLocker
func New(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) RunLocker {
	if client != nil {
		return NewRedisLocker(client, "", ttl, logger)
	}
	return NewLocalLocker()
}

var (
	_ RunLocker = (*RedisLocker)(nil)
	_ RunLocker = (*LocalLocker)(nil)
)
