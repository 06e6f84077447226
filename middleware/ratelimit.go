package middleware

import (
	"encoding/json"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iamfelixjp/jobbers-app/config"
)

// clientLimiter holds one client's token bucket and its last use, so idle
// entries can be expired.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter throttles requests per client IP. It is meant for the
// authentication endpoints, which run before any user identity exists, so
// the remote address is the only key available.
type RateLimiter struct {
	limit rate.Limit
	burst int

	cleanupInterval time.Duration

	mu       sync.RWMutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter builds a limiter from the configured window and starts the
// background cleanup of idle entries.
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	perSecond := float64(cfg.AuthRequestsPerWindow) / cfg.AuthWindow.Seconds()

	rl := &RateLimiter{
		limit:           rate.Limit(perSecond),
		burst:           cfg.AuthRequestsPerWindow,
		cleanupInterval: cfg.CleanupInterval,
		limiters:        make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := rl.getOrCreate(clientIP(r))

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.limit)
				log.Printf("Rate limit exceeded for %s %s from %s", r.Method, r.URL.Path, clientIP(r))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientCount reports how many client entries are currently tracked.
func (rl *RateLimiter) ClientCount() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) getOrCreate(clientKey string) *rate.Limiter {
	rl.mu.RLock()
	cl, exists := rl.limiters[clientKey]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		cl.lastAccess = time.Now()
		rl.mu.Unlock()
		return cl.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another request may have created the entry between the two locks.
	if cl, exists := rl.limiters[clientKey]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[clientKey] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.cleanupInterval * 2
	now := time.Now()

	rl.mu.Lock()
	for clientKey, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, clientKey)
		}
	}
	rl.mu.Unlock()
}

// clientIP keys the limiter on the remote host. RealIP middleware upstream
// rewrites RemoteAddr from X-Forwarded-For when running behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimitResponse(w http.ResponseWriter, limit rate.Limit) {
	// Seconds until one token refills.
	retryAfterSec := int(math.Ceil(1.0 / float64(limit)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"error": "too many requests, please try again later",
	})
}
