package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// NoIndexMiddleware keeps API and live endpoints out of search indexes.
func NoIndexMiddleware(directives ...string) gin.HandlerFunc {
	cleaned := make([]string, 0, len(directives))
	for _, directive := range directives {
		if directive = strings.TrimSpace(directive); directive != "" {
			cleaned = append(cleaned, directive)
		}
	}
	value := "noindex, nofollow"
	if len(cleaned) > 0 {
		value = strings.Join(cleaned, ", ")
	}

	return func(c *gin.Context) {
		c.Header("X-Robots-Tag", value)
		c.Next()
	}
}
