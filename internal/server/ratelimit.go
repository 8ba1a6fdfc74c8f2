package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

// loginRateLimiter tracks one token bucket per client IP so a single host
// cannot brute-force the sign-in form.
type loginRateLimiter struct {
	clients map[string]*client
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	ttl     time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginRateLimiter(rps float64, burst int, ttl time.Duration) *loginRateLimiter {
	rl := &loginRateLimiter{
		clients: make(map[string]*client),
		rate:    rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}

	go rl.cleanup()

	return rl
}

// cleanup drops buckets for IPs that have gone quiet, keeping the map bounded.
func (rl *loginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, cl := range rl.clients {
			if time.Since(cl.lastSeen) > rl.ttl {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *loginRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	cl, exists := rl.clients[ip]
	if !exists {
		cl = &client{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	rl.mu.Unlock()

	return cl.limiter.Allow()
}

// LoginRateLimit throttles sign-in attempts per client IP. Over-limit
// requests bounce back to the login form with a flash instead of reaching
// the credential check.
func LoginRateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := newLoginRateLimiter(rps, burst, 3*time.Minute)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			metrics.RecordLoginAttempt("rate_limited")
			web.Error(c, "Too many login attempts. Please wait a minute and try again.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
