package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxTrackedClients caps the per-IP limiter map; past it the map is reset
// wholesale rather than evicted entry by entry.
const maxTrackedClients = 1000

// RateLimiterConfig sets the steady rate and burst allowance applied to
// every client IP independently.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type clientLimiters struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

func newClientLimiters(config RateLimiterConfig) *clientLimiters {
	cl := &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		config:   config,
	}
	go cl.sweep()
	return cl
}

func (cl *clientLimiters) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	limiter, ok := cl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(cl.config.RequestsPerSecond), cl.config.Burst)
		cl.limiters[ip] = limiter
	}
	return limiter
}

func (cl *clientLimiters) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cl.mu.Lock()
		if len(cl.limiters) > maxTrackedClients {
			cl.limiters = make(map[string]*rate.Limiter)
		}
		cl.mu.Unlock()
	}
}

// RateLimiterMiddleware throttles requests per client IP. Rejected requests
// get a 429 with a retry_after hint in seconds.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	clients := newClientLimiters(config)

	return func(c *gin.Context) {
		limiter := clients.get(c.ClientIP())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := reservation.DelayFrom(time.Now()).Seconds()
			reservation.Cancel()

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Please try again later.",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
