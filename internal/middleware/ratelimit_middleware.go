package middleware

import (
	"sync"
	"time"
)

const (
	invalidAuthLimit  = 5
	invalidAuthWindow = time.Minute
	janitorInterval   = 5 * time.Minute
)

// InvalidAuthRateLimiter throttles unauthenticated probing per source IP.
// The daily quota only covers resolved keys, so requests with a missing or
// unknown key need their own ceiling: 5 attempts per minute.
type InvalidAuthRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*authWindow
}

type authWindow struct {
	count    int
	openedAt time.Time
}

// NewInvalidAuthRateLimiter starts a limiter with a background janitor that
// drops expired windows.
func NewInvalidAuthRateLimiter() *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{windows: make(map[string]*authWindow)}
	go rl.janitor()
	return rl
}

// Allow records one failed-auth attempt from ip and reports whether it is
// still within the window's budget.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w := r.windows[ip]
	if w == nil || now.Sub(w.openedAt) > invalidAuthWindow {
		r.windows[ip] = &authWindow{count: 1, openedAt: now}
		return true
	}
	if w.count >= invalidAuthLimit {
		return false
	}
	w.count++
	return true
}

func (r *InvalidAuthRateLimiter) janitor() {
	ticker := time.NewTicker(janitorInterval)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, w := range r.windows {
			if now.Sub(w.openedAt) > invalidAuthWindow {
				delete(r.windows, ip)
			}
		}
		r.mu.Unlock()
	}
}
