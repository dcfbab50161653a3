package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"altaviva-site/internal/prefstore"
	"altaviva-site/pkg/logger"
)

const VisitorCookieName = "visitor_id"

type VisitorOptions struct {
	MaxAge int
	Secure bool
}

// VisitorMiddleware identifies the browser with a random id kept in a
// cookie. Preference stores key visitor settings by it.
func VisitorMiddleware(opts VisitorOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookieName)
		if err != nil || !validVisitorID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookieName, id, opts.MaxAge, "/", "", opts.Secure, true)
		}

		c.Set(prefstore.VisitorIDKey, id)
		ctx := logger.ContextWithFields(c.Request.Context(), map[string]interface{}{"visitor_id": id})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func validVisitorID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
