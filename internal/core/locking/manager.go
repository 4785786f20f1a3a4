// Package locking provides keyed exclusive holds used to serialize
// balance-gated writes against the same account.
package locking

import (
	"context"
	"sync"
)

const accountKeyPrefix = "ledger:account:"

// Releaser gives back a hold. Release is safe to call more than once.
type Releaser interface {
	Release()
}

// Manager hands out exclusive holds by key. Acquire waits for at most the
// manager's configured bound and then fails with an error wrapping
// apperrors.ErrUnavailable.
type Manager interface {
	Acquire(ctx context.Context, key string) (Releaser, error)
}

// AccountKey is the hold key guarding an account's balance.
func AccountKey(accountID string) string {
	return accountKeyPrefix + accountID
}

type onceReleaser struct {
	once sync.Once
	fn   func()
}

func newReleaser(fn func()) *onceReleaser {
	return &onceReleaser{fn: fn}
}

func (r *onceReleaser) Release() {
	r.once.Do(r.fn)
}
