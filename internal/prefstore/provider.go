// Package prefstore provides the backends that persist visitor preferences
// for the page shell: browser cookies, Redis, or Postgres.
package prefstore

import (
	"errors"
	"fmt"
	"time"

	"altaviva-site/internal/config"
	"altaviva-site/internal/layout"
	"altaviva-site/internal/repository"
	"altaviva-site/pkg/cache"

	"github.com/gin-gonic/gin"
)

// VisitorIDKey is the gin context key holding the visitor id.
const VisitorIDKey = "visitor_id"

var ErrMissingVisitor = errors.New("visitor id is not set")

// Provider hands out the preference storage of the visitor behind a request.
type Provider interface {
	Name() string
	ForRequest(c *gin.Context) layout.Storage
	// ClientSide reports whether values live in the browser, so they can only
	// be written while an HTTP response is still open.
	ClientSide() bool
}

// New picks the provider configured by THEME_STORE.
func New(cfg *config.Config, c *cache.Cache, preferences repository.PreferenceRepository) (Provider, error) {
	switch cfg.ThemeStore {
	case config.ThemeStoreCookie, "":
		return &CookieProvider{MaxAge: cfg.ThemeCookieMaxAge, Secure: cfg.IsProduction()}, nil
	case config.ThemeStoreRedis:
		if !c.Enabled() {
			return nil, fmt.Errorf("theme store %q requires Redis", cfg.ThemeStore)
		}
		return &RedisProvider{Cache: c, TTL: time.Duration(cfg.ThemeCookieMaxAge) * time.Second}, nil
	case config.ThemeStoreDatabase:
		if preferences == nil {
			return nil, fmt.Errorf("theme store %q requires a database", cfg.ThemeStore)
		}
		return &DatabaseProvider{Repo: preferences}, nil
	}
	return nil, fmt.Errorf("unsupported theme store %q", cfg.ThemeStore)
}

// VisitorID returns the id stored by the visitor middleware.
func VisitorID(c *gin.Context) (string, error) {
	if c == nil {
		return "", ErrMissingVisitor
	}
	id := c.GetString(VisitorIDKey)
	if id == "" {
		return "", ErrMissingVisitor
	}
	return id, nil
}

// unavailableStorage fails every operation; it stands in when a visitor
// cannot be identified so the shell falls back to its defaults.
type unavailableStorage struct {
	err error
}

func (u unavailableStorage) Get(string) (string, error) {
	return "", u.err
}

func (u unavailableStorage) Set(string, string) error {
	return u.err
}
