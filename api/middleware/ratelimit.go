package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter 基于客户端IP的令牌桶限流器
type IPRateLimiter struct {
	rps        float64
	burst      int
	expireTime time.Duration
	limiterMap *sync.Map
	stopChan   chan struct{}
}

// NewIPRateLimiter Create new IP-based rate limits
func NewIPRateLimiter(rps float64, burst int, expireTime time.Duration) *IPRateLimiter {
	limiter := &IPRateLimiter{
		rps:        rps,
		burst:      burst,
		expireTime: expireTime,
		limiterMap: &sync.Map{},
		stopChan:   make(chan struct{}),
	}

	// 后台清理过期的客户端
	go limiter.cleanupStaleClients()

	return limiter
}

// Middleware Return a Gin middleware handler
func (rl *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		newLimiter := rate.NewLimiter(rate.Limit(rl.rps), rl.burst)
		val, _ := rl.limiterMap.LoadOrStore(ip, &clientLimiter{
			limiter:  newLimiter,
			lastSeen: time.Now(),
		})

		client := val.(*clientLimiter)
		client.lastSeen = time.Now()

		if !client.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}

// cleanupStaleClients 定期清理长时间未活动的客户端限流器
func (rl *IPRateLimiter) cleanupStaleClients() {
	ticker := time.NewTicker(rl.expireTime)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.expireTime)
			rl.limiterMap.Range(func(key, value interface{}) bool {
				client := value.(*clientLimiter)
				if client.lastSeen.Before(cutoff) {
					rl.limiterMap.Delete(key)
				}
				return true
			})
		}
	}
}

// Stop 停止后台清理
func (rl *IPRateLimiter) Stop() {
	close(rl.stopChan)
}
