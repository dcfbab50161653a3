package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

var stateChangingMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// SameOriginMiddleware rejects state-changing requests whose Origin or
// Referer names another site.
func SameOriginMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if parsed, err := url.Parse(strings.TrimSpace(origin)); err == nil && parsed.Host != "" {
			allowed[strings.ToLower(parsed.Host)] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if _, shouldCheck := stateChangingMethods[c.Request.Method]; !shouldCheck {
			c.Next()
			return
		}

		source := strings.TrimSpace(c.GetHeader("Origin"))
		if source == "" || source == "null" {
			source = strings.TrimSpace(c.GetHeader("Referer"))
		}
		if source == "" {
			c.Next()
			return
		}

		parsed, err := url.Parse(source)
		if err != nil || parsed.Host == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid request origin"})
			return
		}

		host := strings.ToLower(parsed.Host)
		if strings.EqualFold(host, c.Request.Host) {
			c.Next()
			return
		}
		if _, ok := allowed[host]; ok {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "cross-site request rejected"})
	}
}
