// ABOUTME: Per-client rate limiting middleware for control endpoints
// ABOUTME: Keys token buckets by client IP with periodic pruning of idle keys

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// staleAfter is how long an idle client keeps its bucket before pruning.
const staleAfter = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a requests-per-minute budget per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rpm     int
	burst   int
	sweepAt time.Time
}

// NewRateLimiter creates a limiter allowing rpm requests per minute with the
// given burst per client.
func NewRateLimiter(rpm, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		rpm:     rpm,
		burst:   burst,
		sweepAt: time.Now().Add(staleAfter),
	}
}

// Limit wraps a handler, rejecting requests that exceed the client's budget
// with 429 and a Retry-After hint.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			w.Header().Set("Retry-After", "60")
			slog.Warn("Rate limit exceeded", "path", r.URL.Path, "client", clientKey(r))
			writeJSONError(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(float64(rl.rpm)/60.0), rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now

	if now.After(rl.sweepAt) {
		for k, v := range rl.clients {
			if now.Sub(v.lastSeen) > staleAfter {
				delete(rl.clients, k)
			}
		}
		rl.sweepAt = now.Add(staleAfter)
	}

	return c.limiter.Allow()
}

// clientKey extracts the client IP, falling back to the full RemoteAddr when
// it has no port (as in some test requests).
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
