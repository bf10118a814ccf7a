// Package ratelimit implements the per-client admission control gate placed
// in front of every endpoint.
//
// The algorithm is a fixed-window counter: each key gets a counter that
// resets once the configured interval has elapsed since the window started.
// Bursts straddling a window boundary can reach up to twice the nominal
// rate; that trade-off is accepted. Keys are never evicted, which is fine
// for a single-process deployment with a bounded client population.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count       int
	windowStart time.Time
}

// Limiter admits or rejects requests per client key. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	max      int
	interval time.Duration
	clients  map[string]*window
}

// New returns a Limiter allowing max requests per interval for each key.
func New(max int, interval time.Duration) *Limiter {
	return &Limiter{
		max:      max,
		interval: interval,
		clients:  make(map[string]*window),
	}
}

// Max returns the configured per-window request budget.
func (l *Limiter) Max() int {
	return l.max
}

// Admit records one request for key at the given instant. It reports whether
// the request is admitted, how many requests remain in the current window,
// and, on rejection, how long the caller should wait before retrying.
func (l *Limiter) Admit(key string, now time.Time) (ok bool, remaining int, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.clients[key]
	if !exists {
		w = &window{windowStart: now}
		l.clients[key] = w
	}

	if now.Sub(w.windowStart) > l.interval {
		w.count = 0
		w.windowStart = now
	}

	w.count++
	if w.count > l.max {
		retry := w.windowStart.Add(l.interval).Sub(now)
		if retry < 0 {
			retry = 0
		}
		return false, 0, retry
	}

	return true, l.max - w.count, 0
}
