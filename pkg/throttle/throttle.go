package throttle

import (
	"sync"
	"time"
)

// Limiter tracks failed login attempts per account in a sliding window
// and locks the account out once the threshold is exceeded. A successful
// attempt clears the account's history.
type Limiter struct {
	maxFailures int
	window      time.Duration
	lockout     time.Duration

	mu          sync.Mutex
	failures    map[string][]time.Time
	lockedUntil map[string]time.Time
}

func NewLimiter(maxFailures int, lockout time.Duration) *Limiter {
	return NewLimiterWithWindow(maxFailures, lockout, 60*time.Second)
}

func NewLimiterWithWindow(maxFailures int, lockout, window time.Duration) *Limiter {
	return &Limiter{
		maxFailures: maxFailures,
		window:      window,
		lockout:     lockout,
		failures:    make(map[string][]time.Time),
		lockedUntil: make(map[string]time.Time),
	}
}

// Allow reports whether the key may attempt a login right now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	until, ok := l.lockedUntil[key]
	if !ok {
		return true
	}
	if time.Now().Before(until) {
		return false
	}
	delete(l.lockedUntil, key)
	delete(l.failures, key)
	return true
}

// Failure records a failed attempt and starts a lockout once the number
// of failures inside the window passes the threshold.
func (l *Limiter) Failure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.failures[key] = append(l.failures[key], now)
	l.cleanOldFailures(key, now)

	if len(l.failures[key]) > l.maxFailures {
		l.lockedUntil[key] = now.Add(l.lockout)
	}
}

// Success clears the key's failure history.
func (l *Limiter) Success(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
	delete(l.lockedUntil, key)
}

func (l *Limiter) cleanOldFailures(key string, now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.failures[key][:0]
	for _, t := range l.failures[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.failures[key] = kept
}
