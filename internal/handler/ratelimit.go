package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimitPerIP throttles a route group per client IP. Limiters live in an
// expiring LRU so idle IPs do not accumulate in memory. The lookup and insert
// are guarded by a mutex so concurrent first requests from one IP share a
// single limiter rather than each minting their own.
func RateLimitPerIP(perMinute, burst, cacheSize int, entryTTL time.Duration) gin.HandlerFunc {
	visitors := lru.NewLRU[string, *rate.Limiter](cacheSize, nil, entryTTL)
	var mu sync.Mutex

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		lim, found := visitors.Get(ip)
		if !found {
			lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
			visitors.Add(ip, lim)
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}

		c.Next()
	}
}
