package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	locks := newAccountLocks(time.Second)
	ctx := context.Background()

	release, err := locks.acquire(ctx, "alice")
	require.NoError(t, err)
	release()

	// Released scope is immediately reusable.
	release, err = locks.acquire(ctx, "alice")
	require.NoError(t, err)
	release()
}

func TestAcquireTimesOutWhenHeld(t *testing.T) {
	locks := newAccountLocks(20 * time.Millisecond)
	ctx := context.Background()

	release, err := locks.acquire(ctx, "alice")
	require.NoError(t, err)
	defer release()

	_, err = locks.acquire(ctx, "alice")
	assert.ErrorIs(t, err, ErrBusy)

	// A different user's scope is unaffected.
	releaseBob, err := locks.acquire(ctx, "bob")
	require.NoError(t, err)
	releaseBob()
}

func TestAcquireHonorsContextCancellation(t *testing.T) {
	locks := newAccountLocks(time.Minute)

	release, err := locks.acquire(context.Background(), "alice")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = locks.acquire(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcquirePairReleasesFirstOnFailure(t *testing.T) {
	locks := newAccountLocks(20 * time.Millisecond)
	ctx := context.Background()

	// Hold bob so the pair acquisition fails on its second leg.
	releaseBob, err := locks.acquire(ctx, "bob")
	require.NoError(t, err)
	defer releaseBob()

	_, err = locks.acquirePair(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrBusy)

	// alice must have been released on the failure path.
	releaseAlice, err := locks.acquire(ctx, "alice")
	require.NoError(t, err)
	releaseAlice()
}

func TestAcquirePairOppositeOrdersDoNotDeadlock(t *testing.T) {
	locks := newAccountLocks(5 * time.Second)
	ctx := context.Background()

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			release, err := locks.acquirePair(ctx, "alice", "bob")
			assert.NoError(t, err)
			release()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			release, err := locks.acquirePair(ctx, "bob", "alice")
			assert.NoError(t, err)
			release()
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("pair acquisition deadlocked")
	}
}
