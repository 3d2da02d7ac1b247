package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mkowalski/puck-picks/pkg/utils"
)

// RateLimit throttles a route group per client IP. Team mutations hit the
// remote store one round trip per player, so a runaway client can fan out a
// lot of writes; this keeps that bounded.
func RateLimit(rps, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[ip] = limiter
		}
		return limiter
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			utils.SendRateLimited(c, "Too many team updates, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
