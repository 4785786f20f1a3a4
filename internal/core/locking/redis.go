package locking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the key only while it still carries our token, so an
// expired hold that someone else re-acquired is left alone.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

const (
	defaultRetryInterval = 10 * time.Millisecond
	maxRetryInterval     = 250 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// RedisManager hands out holds shared by every process talking to the same
// Redis. A hold expires after ttl even if never released.
type RedisManager struct {
	client        redis.Cmdable
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	newToken      func() string
	logger        *slog.Logger
}

// RedisOption configures a RedisManager.
type RedisOption func(*RedisManager)

// WithRetryInterval sets the first pause between SETNX attempts. Later pauses
// double up to a fixed ceiling.
func WithRetryInterval(d time.Duration) RedisOption {
	return func(m *RedisManager) {
		if d > 0 {
			m.retryInterval = d
		}
	}
}

// WithTokenGenerator replaces the random hold token source.
func WithTokenGenerator(fn func() string) RedisOption {
	return func(m *RedisManager) {
		if fn != nil {
			m.newToken = fn
		}
	}
}

// WithLogger sets the logger used for release failures.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(m *RedisManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewRedisManager creates a RedisManager on top of client.
func NewRedisManager(client redis.Cmdable, ttl, wait time.Duration, opts ...RedisOption) *RedisManager {
	m := &RedisManager{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
		newToken:      uuid.NewString,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *RedisManager) Acquire(ctx context.Context, key string) (Releaser, error) {
	token := m.newToken()
	deadline := time.Now().Add(m.wait)
	backoff := m.retryInterval

	for {
		ok, err := m.client.SetNX(ctx, key, token, m.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("acquiring hold on %s: %w", key, ctxErr)
			}
			return nil, fmt.Errorf("%w: acquiring hold on %s: %v", apperrors.ErrInternal, key, err)
		}
		if ok {
			return newReleaser(func() { m.release(key, token) }), nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: hold on %s not acquired within %s", apperrors.ErrUnavailable, key, m.wait)
		}

		pause := backoff
		if pause > remaining {
			pause = remaining
		}
		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
		if backoff > maxRetryInterval {
			backoff = maxRetryInterval
		}
	}
}

// release runs on its own context: the caller's may already be cancelled.
func (m *RedisManager) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := m.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		m.logger.Error("Failed to release redis hold", "key", key, "error", err)
	}
}

var _ Manager = (*RedisManager)(nil)
