package prefstore

import (
	"errors"

	"altaviva-site/internal/layout"
	"altaviva-site/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DatabaseProvider struct {
	Repo repository.PreferenceRepository
}

func (p *DatabaseProvider) Name() string {
	return "database"
}

func (p *DatabaseProvider) ClientSide() bool {
	return false
}

func (p *DatabaseProvider) ForRequest(c *gin.Context) layout.Storage {
	visitorID, err := VisitorID(c)
	if err != nil {
		return unavailableStorage{err: err}
	}
	return NewDatabaseStore(p.Repo, visitorID)
}

// DatabaseStore keeps one visitor's preferences in the preferences table.
type DatabaseStore struct {
	repo      repository.PreferenceRepository
	visitorID string
}

func NewDatabaseStore(repo repository.PreferenceRepository, visitorID string) *DatabaseStore {
	return &DatabaseStore{repo: repo, visitorID: visitorID}
}

func (s *DatabaseStore) Get(key string) (string, error) {
	preference, err := s.repo.Get(s.visitorID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", layout.ErrPreferenceNotFound
		}
		return "", err
	}
	return preference.Value, nil
}

func (s *DatabaseStore) Set(key, value string) error {
	err := s.repo.Set(s.visitorID, key, value)
	recordWrite("database", err)
	return err
}
