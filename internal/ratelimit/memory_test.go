package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apitemplate/go-user-api/internal/ratelimit"
)

func TestMemoryStore_CountsWithinWindow(t *testing.T) {
	s := ratelimit.NewMemoryStore()
	ctx := context.Background()

	var resetAt time.Time
	for i := 1; i <= 5; i++ {
		count, r, err := s.Increment(ctx, "rl:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		if i == 1 {
			resetAt = r
			assert.WithinDuration(t, time.Now().Add(time.Minute), r, time.Second)
		} else {
			// Same window keeps the same reset instant.
			assert.Equal(t, resetAt, r)
		}
	}
}

func TestMemoryStore_WindowElapsesResetsCount(t *testing.T) {
	s := ratelimit.NewMemoryStore()
	ctx := context.Background()

	count, firstReset, err := s.Increment(ctx, "rl:k", 30*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	count, _, err = s.Increment(ctx, "rl:k", 30*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	time.Sleep(40 * time.Millisecond)

	count, secondReset, err := s.Increment(ctx, "rl:k", 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "first request after the window starts a fresh count")
	assert.True(t, secondReset.After(firstReset))
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := ratelimit.NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.Increment(ctx, "auth:1.2.3.4", time.Minute)
		require.NoError(t, err)
	}
	count, _, err := s.Increment(ctx, "rl:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "disjoint prefixes never share counters")
}

func TestMemoryStore_SweepRemovesExpiredEntries(t *testing.T) {
	s := ratelimit.NewMemoryStore()
	ctx := context.Background()

	_, _, err := s.Increment(ctx, "rl:gone", 10*time.Millisecond)
	require.NoError(t, err)
	_, _, err = s.Increment(ctx, "rl:kept", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	s.StartSweeper(15 * time.Millisecond)
	defer s.Stop()

	assert.Eventually(t, func() bool { return s.Len() == 1 }, time.Second, 10*time.Millisecond,
		"expired entry should be swept independent of traffic")
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	s := ratelimit.NewMemoryStore()
	ctx := context.Background()

	const workers = 20
	const perWorker = 50
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for j := 0; j < perWorker; j++ {
				_, _, _ = s.Increment(ctx, "rl:shared", time.Minute)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	count, _, err := s.Increment(ctx, "rl:shared", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker+1, count, "no lost increments under contention")
}
