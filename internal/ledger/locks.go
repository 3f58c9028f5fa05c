package ledger

import (
	"context"
	"sync"
	"time"
)

// accountLocks serializes check-and-append sequences per user. Each user id
// maps to a one-slot channel semaphore; holding the slot is holding the
// user's exclusion scope. Channel semaphores (rather than sync.Mutex) let
// acquisition respect context cancellation and a bounded wait.
type accountLocks struct {
	mu      sync.Mutex
	slots   map[string]chan struct{}
	waitMax time.Duration
}

func newAccountLocks(waitMax time.Duration) *accountLocks {
	return &accountLocks{
		slots:   make(map[string]chan struct{}),
		waitMax: waitMax,
	}
}

func (l *accountLocks) slot(userID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[userID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[userID] = ch
	}
	return ch
}

// acquire takes the user's exclusion scope, waiting at most waitMax. It
// returns the release func, or ErrBusy when the wait expires, or the
// context error when the caller gives up first. The scope is never held on
// an error return.
func (l *accountLocks) acquire(ctx context.Context, userID string) (release func(), err error) {
	timer := time.NewTimer(l.waitMax)
	defer timer.Stop()

	slot := l.slot(userID)
	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrBusy
	}
}

// acquirePair takes both users' scopes in lexicographic id order so two
// opposite-direction transfers cannot deadlock.
func (l *accountLocks) acquirePair(ctx context.Context, a, b string) (release func(), err error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	releaseFirst, err := l.acquire(ctx, first)
	if err != nil {
		return nil, err
	}
	releaseSecond, err := l.acquire(ctx, second)
	if err != nil {
		releaseFirst()
		return nil, err
	}

	return func() {
		releaseSecond()
		releaseFirst()
	}, nil
}
