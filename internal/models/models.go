package models

import (
	"time"
)

// Preference is a visitor-scoped key/value setting such as the theme.
type Preference struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VisitorID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_preferences_visitor_key" json:"visitor_id"`
	Key       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_preferences_visitor_key" json:"key"`
	Value     string `gorm:"type:varchar(255);not null" json:"value"`
}

// ThemeResponse is returned by the theme API.
type ThemeResponse struct {
	Theme       string   `json:"theme"`
	RootClasses []string `json:"root_classes"`
	Store       string   `json:"store"`
	Persisted   bool     `json:"persisted"`
}

// SetThemeRequest sets an explicit theme instead of toggling.
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}

// NavigationEntry is the API shape of a navigation link.
type NavigationEntry struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}
