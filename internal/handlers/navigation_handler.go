package handlers

import (
	"net/http"

	"altaviva-site/internal/models"
	"altaviva-site/pkg/navigation"
	"altaviva-site/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NavigationHandler struct {
	entries []navigation.Item
}

func NewNavigationHandler(entries []navigation.Item) *NavigationHandler {
	if entries == nil {
		entries = navigation.Entries()
	}
	return &NavigationHandler{entries: entries}
}

// List returns the navigation entries, flagging the one matching ?path=.
func (h *NavigationHandler) List(c *gin.Context) {
	current := ""
	if raw := c.Query("path"); raw != "" {
		current = utils.NormalizePath(raw)
	}

	items := make([]models.NavigationEntry, 0, len(h.entries))
	for _, entry := range h.entries {
		items = append(items, toEntry(entry, current))
	}

	quick := navigation.QuickLinks(h.entries, navigation.QuickLinkCount)
	quickItems := make([]models.NavigationEntry, 0, len(quick))
	for _, entry := range quick {
		quickItems = append(quickItems, toEntry(entry, current))
	}

	c.JSON(http.StatusOK, gin.H{
		"navigation":  items,
		"quick_links": quickItems,
	})
}

func toEntry(item navigation.Item, current string) models.NavigationEntry {
	return models.NavigationEntry{
		Label:  item.Label,
		Path:   item.Path,
		Icon:   string(item.Icon),
		Active: item.IsActive(current),
	}
}
