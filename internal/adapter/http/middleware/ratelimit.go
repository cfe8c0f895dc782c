package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements per-IP rate limiting
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	name     string
	rate     rate.Limit
	burst    int
	now      func() time.Time

	// OnLimited, when set, is called with the limiter name on every rejection.
	OnLimited func(name string)
}

// NewRateLimiter creates a new rate limiter
// rate: requests per second
// burst: max burst size
func NewRateLimiter(name string, r float64, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		name:     name,
		rate:     rate.Limit(r),
		burst:    b,
		now:      time.Now,
	}
}

// getLimiter returns a rate limiter for the given IP
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = rl.now()

	return v.limiter
}

// Limit is a middleware that enforces rate limiting per IP
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(getIP(r)).Allow() {
			if rl.OnLimited != nil {
				rl.OnLimited(rl.name)
			}
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIP extracts the client IP from the request
func getIP(r *http.Request) string {
	// First hop of X-Forwarded-For (if behind proxy)
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// CleanupLimiters drops limiters not used within maxIdle.
func (rl *RateLimiter) CleanupLimiters(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// RunCleanup calls CleanupLimiters every interval until ctx is done.
func (rl *RateLimiter) RunCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(maxIdle)
		}
	}
}
