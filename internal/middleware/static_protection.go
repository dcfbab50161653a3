package middleware

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var publicAssetExtensions = map[string]struct{}{
	".css":   {},
	".js":    {},
	".svg":   {},
	".png":   {},
	".jpg":   {},
	".jpeg":  {},
	".webp":  {},
	".ico":   {},
	".woff2": {},
}

// StaticProtection serves only known asset types from /static.
func StaticProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ext := strings.ToLower(filepath.Ext(strings.TrimSpace(c.Param("filepath"))))
		if _, ok := publicAssetExtensions[ext]; ok {
			c.Header("Cache-Control", "public, max-age=86400")
			c.Next()
			return
		}

		c.AbortWithStatus(http.StatusNotFound)
	}
}
