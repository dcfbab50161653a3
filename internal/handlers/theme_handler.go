package handlers

import (
	"net/http"

	"altaviva-site/internal/layout"
	"altaviva-site/internal/models"
	"altaviva-site/internal/prefstore"
	"altaviva-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ThemeHandler exposes the visitor's theme preference over HTTP.
type ThemeHandler struct {
	provider prefstore.Provider
}

func NewThemeHandler(provider prefstore.Provider) *ThemeHandler {
	return &ThemeHandler{provider: provider}
}

func (h *ThemeHandler) load(c *gin.Context) *layout.ThemeContext {
	ctx := layout.NewThemeContext(h.provider.ForRequest(c), layout.NewClassList())
	if _, err := ctx.Load(); err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Warn("Falling back to light theme")
	}
	return ctx
}

func (h *ThemeHandler) respond(c *gin.Context, ctx *layout.ThemeContext, persisted bool) {
	classes := []string{}
	if list, ok := ctx.Root().(*layout.ClassList); ok {
		classes = list.Classes()
	}

	c.JSON(http.StatusOK, models.ThemeResponse{
		Theme:       ctx.Current().String(),
		RootClasses: classes,
		Store:       h.provider.Name(),
		Persisted:   persisted,
	})
}

func (h *ThemeHandler) Get(c *gin.Context) {
	h.respond(c, h.load(c), true)
}

// Toggle flips the theme. A failed write still returns the new theme with
// persisted set to false.
func (h *ThemeHandler) Toggle(c *gin.Context) {
	ctx := h.load(c)

	theme, err := ctx.Toggle()
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).WithField("theme", theme.String()).Error("Failed to persist theme preference")
	}

	h.respond(c, ctx, err == nil)
}

func (h *ThemeHandler) Set(c *gin.Context) {
	var req models.SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme, err := layout.ParseTheme(req.Theme)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := h.load(c)
	err = ctx.Set(theme)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).WithField("theme", theme.String()).Error("Failed to persist theme preference")
	}

	h.respond(c, ctx, err == nil)
}
