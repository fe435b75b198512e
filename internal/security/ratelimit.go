package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple per-client token bucket, used to
// throttle the authentication endpoints by IP
type RateLimiter struct {
	clients map[string]*clientBucket
	mu      sync.RWMutex
	rate    int           // requests per window
	window  time.Duration // refill window
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing rate requests per window
// and starts its background cleanup
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rate:    rate,
		window:  window,
	}
	go rl.cleanupStale()
	return rl
}

// Allow checks if a request from a client key should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	bucket, exists := rl.clients[key]
	if !exists {
		bucket = &clientBucket{
			tokens:     rl.rate,
			lastRefill: time.Now(),
		}
		rl.clients[key] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	if now.Sub(bucket.lastRefill) >= rl.window {
		bucket.tokens = rl.rate
		bucket.lastRefill = now
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

// cleanupStale drops buckets that haven't been touched for two windows
func (rl *RateLimiter) cleanupStale() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, bucket := range rl.clients {
			bucket.mu.Lock()
			if now.Sub(bucket.lastRefill) > rl.window*2 {
				delete(rl.clients, key)
			}
			bucket.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request, honoring common
// reverse-proxy headers
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
