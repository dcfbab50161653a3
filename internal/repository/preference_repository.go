package repository

import (
	"time"

	"altaviva-site/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	Get(visitorID, key string) (*models.Preference, error)
	Set(visitorID, key, value string) error
	Delete(visitorID, key string) error
	// DeleteStale removes preferences not updated since before.
	DeleteStale(before time.Time) (int64, error)
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(visitorID, key string) (*models.Preference, error) {
	var preference models.Preference
	err := r.db.First(&preference, "visitor_id = ? AND key = ?", visitorID, key).Error
	return &preference, err
}

func (r *preferenceRepository) Set(visitorID, key, value string) error {
	preference := &models.Preference{VisitorID: visitorID, Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": gorm.Expr("NOW()")}),
	}).Create(preference).Error
}

func (r *preferenceRepository) Delete(visitorID, key string) error {
	return r.db.Delete(&models.Preference{}, "visitor_id = ? AND key = ?", visitorID, key).Error
}

func (r *preferenceRepository) DeleteStale(before time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", before).Delete(&models.Preference{})
	return result.RowsAffected, result.Error
}
