// Package ratelimit implements a fixed-window request counter behind a
// pluggable store, so a single-process in-memory map and a shared Redis
// deployment are interchangeable.
package ratelimit

import (
	"context"
	"time"
)

// Store tracks request counts per key over fixed windows.
type Store interface {
	// Increment records one request for key and returns the count within the
	// current window together with the instant the window resets. The first
	// request after a window has elapsed starts a fresh window with count 1.
	// The read-increment step is atomic per key.
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}
