// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

const (
	// DefaultMaxAttempts is the default number of allowed attempts per window.
	DefaultMaxAttempts = 5
	// DefaultWindowDuration is the default time window for rate limiting.
	DefaultWindowDuration = 1 * time.Minute

	maxTrackedClients = 10000
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter provides IP-based rate limiting functionality. Entries live in
// a bounded LRU that expires them after one window, so idle clients need no
// explicit cleanup.
type RateLimiter struct {
	mu             sync.Mutex
	entries        *expirable.LRU[string, *rateLimitEntry]
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultMaxAttempts, DefaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:        expirable.NewLRU[string, *rateLimitEntry](maxTrackedClients, nil, windowDuration),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(clientIP) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.entries.Get(key)
	if !ok || now.After(entry.resetTime) {
		rl.entries.Add(key, &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		})
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}
	return false
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries.Purge()
}
