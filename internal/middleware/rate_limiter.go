package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
)

const (
	// defaultMaxAttempts is the number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindow is the time window for rate limiting.
	defaultWindow = 1 * time.Minute
)

// rateLimitEntry tracks attempts for a single client within one window.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter provides in-memory, IP-based rate limiting for the
// unauthenticated auth endpoints.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxAttempts int
	window      time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter creates a rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindow)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
// A background goroutine prunes expired entries once per window; call
// Stop to terminate it.
func NewRateLimiterWithConfig(maxAttempts int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
		stop:        make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// janitor drops expired entries on a fixed interval so the per-client
// map stays bounded by the number of clients active within one window.
func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware returns a Gin handler that enforces the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(clientIP) {
			c.JSON(apperrors.ErrRateLimited.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrRateLimited.Code,
					"message": apperrors.ErrRateLimited.Message,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow reports whether a request from the given key is within the limit.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	entry, exists := rl.entries[key]
	if !exists {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if now.After(entry.resetTime) {
		entry.attempts = 1
		entry.resetTime = now.Add(rl.window)
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// Reset clears all tracked state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}

// cleanup removes expired entries to bound memory use.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
