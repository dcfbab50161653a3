package prefstore

import (
	"net/http"

	"altaviva-site/internal/layout"

	"github.com/gin-gonic/gin"
)

type CookieProvider struct {
	MaxAge int
	Secure bool
}

func (p *CookieProvider) Name() string {
	return "cookie"
}

func (p *CookieProvider) ClientSide() bool {
	return true
}

func (p *CookieProvider) ForRequest(c *gin.Context) layout.Storage {
	return &CookieStore{ctx: c, maxAge: p.MaxAge, secure: p.Secure, written: make(map[string]string)}
}

// CookieStore keeps preferences in cookies of the current request. Values
// written during the request are visible to later reads of the same request.
type CookieStore struct {
	ctx     *gin.Context
	maxAge  int
	secure  bool
	written map[string]string
}

func (s *CookieStore) Get(key string) (string, error) {
	if value, ok := s.written[key]; ok {
		return value, nil
	}
	value, err := s.ctx.Cookie(key)
	if err != nil || value == "" {
		return "", layout.ErrPreferenceNotFound
	}
	return value, nil
}

func (s *CookieStore) Set(key, value string) error {
	s.written[key] = value
	s.ctx.SetSameSite(http.SameSiteLaxMode)
	s.ctx.SetCookie(key, value, s.maxAge, "/", "", s.secure, false)
	recordWrite("cookie", nil)
	return nil
}
