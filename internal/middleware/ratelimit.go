package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware bounds the LLM-backed endpoints per client IP.
// Authentication attempts themselves are not limited; this only throttles
// the endpoints that cost an upstream API call.
func RateLimitMiddleware() gin.HandlerFunc {
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		// 2 req/s with a burst of 10, limiter state kept for an hour
		return rate.NewLimiter(rate.Every(500*time.Millisecond), 10), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})
}
