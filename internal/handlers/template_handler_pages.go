package handlers

import (
	"errors"
	"net/http"
	"strings"

	"altaviva-site/internal/content"
	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/navigation"

	"github.com/gin-gonic/gin"
)

// RenderIndex sends visitors to the home page.
func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	c.Redirect(http.StatusFound, navigation.PageURL("Home"))
}

// RenderPage serves GET /:page.
func (h *TemplateHandler) RenderPage(c *gin.Context) {
	name := strings.TrimSpace(c.Param("page"))

	page, err := h.content.Page(name)
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			h.RenderNotFound(c)
			return
		}
		logger.FromContext(c.Request.Context()).WithError(err).WithField("page", name).Error("Failed to load page")
		h.renderError(c, http.StatusInternalServerError, "Erro interno", "Não foi possível carregar a página. Tente novamente em instantes.")
		return
	}

	h.renderTemplate(c, "page", page.Title, h.site.Tagline, gin.H{"Page": page})
}

// RenderNotFound shows the 404 page inside the shell for browsers and a
// JSON error for API clients.
func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || !acceptsHTML(c.Request) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.renderError(c, http.StatusNotFound, "Página não encontrada", "A página que você procura não existe ou foi movida.")
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
