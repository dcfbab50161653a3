package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"altaviva-site/internal/config"
	"altaviva-site/internal/content"
	"altaviva-site/internal/layout"
	"altaviva-site/internal/prefstore"
	"altaviva-site/pkg/navigation"
)

// TemplateHandler renders site pages inside the page shell.
type TemplateHandler struct {
	templates  *template.Template
	config     *config.Config
	content    *content.Service
	provider   prefstore.Provider
	primitives layout.Primitives
	navigation []navigation.Item
	site       layout.SiteInfo
	clock      func() time.Time
}

func NewTemplateHandler(cfg *config.Config, templates *template.Template, pages *content.Service, provider prefstore.Provider) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if pages == nil {
		return nil, fmt.Errorf("content service is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("preference provider is required")
	}
	if cfg == nil {
		cfg = config.New()
	}

	return &TemplateHandler{
		templates:  templates,
		config:     cfg,
		content:    pages,
		provider:   provider,
		navigation: navigation.Entries(),
		site:       siteInfo(cfg),
		clock:      time.Now,
	}, nil
}

func siteInfo(cfg *config.Config) layout.SiteInfo {
	site := layout.DefaultSiteInfo()
	if name := strings.TrimSpace(cfg.SiteName); name != "" {
		site.Name = name
	}
	if tagline := strings.TrimSpace(cfg.SiteTagline); tagline != "" {
		site.Tagline = tagline
	}
	if logo := strings.TrimSpace(cfg.SiteLogo); logo != "" {
		site.Logo = logo
	}
	return site
}

func (h *TemplateHandler) SetNavigation(items []navigation.Item) {
	h.navigation = items
}

func (h *TemplateHandler) SetPrimitives(primitives layout.Primitives) {
	h.primitives = primitives
}

func (h *TemplateHandler) SetClock(clock func() time.Time) {
	if clock != nil {
		h.clock = clock
	}
}
