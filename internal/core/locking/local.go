package locking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"golang.org/x/sync/semaphore"
)

type keyedHold struct {
	sem  *semaphore.Weighted
	refs int
}

// LocalManager serializes holders of the same key within one process.
// Each key gets a weighted semaphore of size one that is dropped again once
// no goroutine holds or waits for it.
type LocalManager struct {
	mu    sync.Mutex
	holds map[string]*keyedHold
	wait  time.Duration
}

// NewLocalManager creates a LocalManager. A non-positive wait means callers
// wait until their own context ends.
func NewLocalManager(wait time.Duration) *LocalManager {
	return &LocalManager{
		holds: make(map[string]*keyedHold),
		wait:  wait,
	}
}

func (m *LocalManager) Acquire(ctx context.Context, key string) (Releaser, error) {
	h := m.ref(key)

	waitCtx := ctx
	if m.wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, m.wait)
		defer cancel()
	}

	if err := h.sem.Acquire(waitCtx, 1); err != nil {
		m.unref(key, h)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: hold on %s not acquired within %s", apperrors.ErrUnavailable, key, m.wait)
	}

	return newReleaser(func() {
		h.sem.Release(1)
		m.unref(key, h)
	}), nil
}

func (m *LocalManager) ref(key string) *keyedHold {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holds[key]
	if !ok {
		h = &keyedHold{sem: semaphore.NewWeighted(1)}
		m.holds[key] = h
	}
	h.refs++
	return h
}

func (m *LocalManager) unref(key string, h *keyedHold) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.refs--
	if h.refs == 0 {
		delete(m.holds, key)
	}
}

// activeKeys reports how many keys are currently held or awaited.
func (m *LocalManager) activeKeys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.holds)
}

var _ Manager = (*LocalManager)(nil)
