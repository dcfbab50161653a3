package prefstore

import (
	"errors"
	"time"

	"altaviva-site/internal/layout"
	"altaviva-site/pkg/cache"

	"github.com/gin-gonic/gin"
)

type RedisProvider struct {
	Cache *cache.Cache
	TTL   time.Duration
}

func (p *RedisProvider) Name() string {
	return "redis"
}

func (p *RedisProvider) ClientSide() bool {
	return false
}

func (p *RedisProvider) ForRequest(c *gin.Context) layout.Storage {
	visitorID, err := VisitorID(c)
	if err != nil {
		return unavailableStorage{err: err}
	}
	return NewRedisStore(p.Cache, visitorID, p.TTL)
}

// RedisStore keeps one visitor's preferences under pref:<visitor>:<key>.
type RedisStore struct {
	cache     *cache.Cache
	visitorID string
	ttl       time.Duration
}

func NewRedisStore(c *cache.Cache, visitorID string, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, visitorID: visitorID, ttl: ttl}
}

func (s *RedisStore) Get(key string) (string, error) {
	value, err := s.cache.GetString(cache.PreferenceKey(s.visitorID, key))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return "", layout.ErrPreferenceNotFound
	}
	return value, err
}

func (s *RedisStore) Set(key, value string) error {
	err := s.cache.SetString(cache.PreferenceKey(s.visitorID, key), value, s.ttl)
	recordWrite("redis", err)
	return err
}
