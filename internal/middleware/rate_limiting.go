package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"altaviva-site/internal/config"
)

const RateLimitManagerKey = "rateLimitManager"

func managerFromContext(c *gin.Context) *RateLimitManager {
	value, exists := c.Get(RateLimitManagerKey)
	if !exists {
		return nil
	}
	manager, _ := value.(*RateLimitManager)
	return manager
}

// RateLimitMiddleware limits requests per IP. It reads the manager the
// application stores in the context under RateLimitManagerKey.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		manager := managerFromContext(c)
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(c.ClientIP(), cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}

// OperationRateLimitMiddleware applies a separate budget to one operation.
func OperationRateLimitMiddleware(operation string, requestsPerWindow, windowSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		manager := managerFromContext(c)
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetOperationLimiter(c.ClientIP(), operation, requestsPerWindow, windowSeconds)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":          operation + " rate limit exceeded",
				"retry_after":    windowSeconds,
				"max_requests":   requestsPerWindow,
				"window_seconds": windowSeconds,
			})
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/static/") {
		return true
	}

	switch path {
	case "/favicon.ico", "/health", "/metrics":
		return true
	}

	return false
}
