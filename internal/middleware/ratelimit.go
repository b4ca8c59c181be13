package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
)

type rateEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter caps requests per client address on a rolling fixed window.
// State is per process and resets on restart; it is not distributed-safe.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateEntry
	limit   int
	window  time.Duration
	stop    chan struct{}
}

// NewRateLimiter allows limit requests per window per client key and
// sweeps stale entries every sweepInterval.
func NewRateLimiter(limit int, window, sweepInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*rateEntry),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop(sweepInterval)
	return rl
}

// Allow reports whether a request from key fits in the current window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, ok := rl.clients[key]
	if !ok || now.After(e.resetTime) {
		rl.clients[key] = &rateEntry{count: 1, resetTime: now.Add(rl.window)}
		return true
	}
	if e.count >= rl.limit {
		return false
	}
	e.count++
	return true
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			logrus.WithField("ip", c.ClientIP()).Warn("rate limit exceeded")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "تم تجاوز الحد الأقصى للطلبات. يرجى المحاولة لاحقاً.",
			})
			return
		}
		c.Next()
	}
}

// Stop terminates the sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, e := range rl.clients {
		if now.After(e.resetTime) {
			delete(rl.clients, key)
		}
	}
}
