package memory

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultRateWindow = 60 * time.Second
	DefaultRateMax    = 20
)

type rateKey struct {
	storeID string
	userID  string
}

type rateWindow struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window counter per (store, user). A fresh window
// opens only once strictly more than the window length has elapsed, and a
// denied call still counts against the current window.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[rateKey]*rateWindow
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewRateLimiter builds a limiter. Zero values fall back to 20 calls per 60s
// and a nil clock uses time.Now.
func NewRateLimiter(window time.Duration, max int, now func() time.Time) *RateLimiter {
	if window <= 0 {
		window = DefaultRateWindow
	}
	if max <= 0 {
		max = DefaultRateMax
	}
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[rateKey]*rateWindow),
		window:  window,
		max:     max,
		now:     now,
	}
}

func (l *RateLimiter) Allow(_ context.Context, storeID, userID string) (bool, error) {
	now := l.now()
	key := rateKey{storeID, userID}

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) > l.window {
		l.windows[key] = &rateWindow{start: now, count: 1}
		return true, nil
	}
	w.count++
	return w.count <= l.max, nil
}
