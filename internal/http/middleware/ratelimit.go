package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a per-IP token bucket. Page loads are cheap but every
// accepted submission costs a webhook round trip, so one misbehaving client
// must not be able to monopolize the downstream endpoint.
type RateLimiter struct {
	mu    sync.Mutex
	seen  map[string]*tokenBucket
	rate  float64 // tokens refilled per second
	burst float64
	now   func() time.Time
}

type tokenBucket struct {
	tokens float64
	stamp  time.Time
}

// NewRateLimiter allows rate requests/sec with the given burst size per IP.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		seen:  make(map[string]*tokenBucket),
		rate:  rate,
		burst: float64(burst),
		now:   time.Now,
	}
	// Periodically evict stale entries to prevent memory growth.
	go rl.evictStale()
	return rl
}

// Allow reports whether a request from ip is within the rate limit,
// consuming one token when it is.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.seen[ip]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, stamp: now}
		rl.seen[ip] = b
	}

	b.tokens += now.Sub(b.stamp).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.stamp = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := rl.now().Add(-10 * time.Minute)
		for ip, b := range rl.seen {
			if b.stamp.Before(cutoff) {
				delete(rl.seen, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit rejects clients that exceed the configured rate with 429 and a
// JSON body matching the API's error shape.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
