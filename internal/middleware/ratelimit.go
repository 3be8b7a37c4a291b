package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"arcade-leaderboard/internal/constants"
)

type ipWindow struct {
	start time.Time
	count int
}

// IPRateLimiter admits at most limit requests per client IP in each fixed window. A client's
// window opens with its first request and resets once it has fully elapsed.
type IPRateLimiter struct {
	mu     sync.Mutex
	ips    map[string]*ipWindow
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*ipWindow),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.ips) > constants.LimiterCleanupThreshold {
		for k, w := range l.ips {
			if now.Sub(w.start) >= l.window {
				delete(l.ips, k)
			}
		}
	}

	w, ok := l.ips[ip]
	if !ok || now.Sub(w.start) >= l.window {
		w = &ipWindow{start: now}
		l.ips[ip] = w
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RateLimit rejects requests over the limit by calling onLimited instead of next.
func RateLimit(limiter *IPRateLimiter, onLimited http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientIP(r)) {
				onLimited(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
