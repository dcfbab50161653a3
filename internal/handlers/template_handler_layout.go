package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"altaviva-site/internal/layout"
	"altaviva-site/pkg/logger"
	"altaviva-site/pkg/utils"

	"github.com/gin-gonic/gin"
)

const liveEndpoint = "/live"

func (h *TemplateHandler) basePageData(title, description string, extra gin.H) gin.H {
	liveURL := ""
	if h.config.EnableLive {
		liveURL = liveEndpoint
	}

	data := gin.H{
		"Title":       title + " - " + h.site.Name,
		"Description": description,
		"Site": gin.H{
			"Name":    h.site.Name,
			"Tagline": h.site.Tagline,
			"URL":     h.config.SiteURL,
			"Logo":    h.site.Logo,
		},
		"LiveURL":    liveURL,
		"ThemeStore": h.provider.Name(),
		"ThemeKey":   layout.ThemeStorageKey,
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}

// newShell builds a shell for the visitor behind c, with the theme read
// from their preference store.
func (h *TemplateHandler) newShell(c *gin.Context) *layout.PageShell {
	shell := layout.NewPageShell(layout.Options{
		Entries:    h.navigation,
		Site:       h.site,
		Storage:    h.provider.ForRequest(c),
		Primitives: h.primitives,
		Clock:      h.clock,
	})
	shell.Mount(layout.NewHeadlessSurface())
	return shell
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	data := h.basePageData(title, description, extra)
	if templateName == "" {
		templateName = "page"
	}
	h.renderWithLayout(c, http.StatusOK, "base.html", templateName+".html", data)
}

func (h *TemplateHandler) renderWithLayout(c *gin.Context, status int, layoutName, contentName string, data gin.H) {
	h.applySEOMetadata(c, data)
	h.setNavigationState(c, data)

	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}

	contentTmpl := h.templates.Lookup(contentName)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": contentName})
		h.renderFallback(c, http.StatusInternalServerError, "Template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": contentName})
		h.renderFallback(c, http.StatusInternalServerError, "Failed to render content")
		return
	}

	shell := h.newShell(c)
	defer shell.Unmount()

	activePath := getString(data, "ActivePath")
	view := shell.Render(activePath, template.HTML(buf))
	data["Shell"] = view
	data["Content"] = view.Content

	layoutTmpl := h.templates.Lookup(layoutName)
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": layoutName})
		h.renderFallback(c, http.StatusInternalServerError, "Template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": layoutName})
		h.renderFallback(c, http.StatusInternalServerError, "Failed to render layout")
		return
	}

	// The markup depends on the visitor's theme.
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", output)
}

// renderError shows an error page inside the shell.
func (h *TemplateHandler) renderError(c *gin.Context, status int, heading, message string) {
	data := h.basePageData(heading, message, gin.H{
		"Heading":    heading,
		"Message":    message,
		"StatusCode": status,
		"NoIndex":    true,
	})
	h.renderWithLayout(c, status, "base.html", "error.html", data)
}

func (h *TemplateHandler) renderFallback(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (h *TemplateHandler) applySEOMetadata(c *gin.Context, data gin.H) {
	siteURL := h.config.SiteURL
	siteData, _ := data["Site"].(gin.H)
	if siteData != nil {
		if value := getString(siteData, "URL"); value != "" {
			siteURL = value
		}
	}

	if normalized := h.normalizeBaseURL(siteURL, c.Request); normalized != "" {
		siteURL = normalized
	}

	if siteData != nil {
		siteData["URL"] = siteURL
		siteData["Logo"] = h.resolveAbsoluteURL(siteURL, getString(siteData, "Logo"), c.Request)
	}

	canonical := strings.TrimSpace(getString(data, "Canonical"))
	if canonical == "" {
		canonical = h.buildCanonicalURL(siteURL, c.Request.URL)
	} else {
		canonical = h.resolveAbsoluteURL(siteURL, canonical, c.Request)
	}
	data["Canonical"] = canonical

	if strings.TrimSpace(getString(data, "OGURL")) == "" {
		data["OGURL"] = canonical
	}
	if strings.TrimSpace(getString(data, "OGType")) == "" {
		data["OGType"] = "website"
	}

	ogImage := strings.TrimSpace(getString(data, "OGImage"))
	if ogImage != "" {
		ogImage = h.resolveAbsoluteURL(siteURL, ogImage, c.Request)
	} else if siteData != nil {
		ogImage = getString(siteData, "Logo")
	}
	data["OGImage"] = ogImage

	if strings.TrimSpace(getString(data, "TwitterCard")) == "" {
		data["TwitterCard"] = "summary"
	}
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	data["ActivePath"] = utils.NormalizePath(c.Request.URL.Path)
}

func (h *TemplateHandler) resolveAbsoluteURL(baseURL, value string, r *http.Request) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "//") {
		scheme := requestScheme(r)
		if scheme == "" {
			return value
		}
		return scheme + ":" + value
	}

	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}

	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}

	if base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/"); base != "" {
		return base + value
	}

	if scheme, host := requestScheme(r), requestHost(r); scheme != "" && host != "" {
		return scheme + "://" + host + value
	}

	return value
}

// normalizeBaseURL switches the configured site URL to the request scheme
// when it names the same host, so proxies terminating TLS get https links.
func (h *TemplateHandler) normalizeBaseURL(baseURL string, r *http.Request) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" || r == nil {
		return baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	if parsed.Host != "" && !strings.EqualFold(parsed.Host, requestHost(r)) {
		return baseURL
	}

	scheme := requestScheme(r)
	if scheme == "" || parsed.Scheme == scheme {
		return baseURL
	}

	parsed.Scheme = scheme
	return parsed.String()
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return ""
	}

	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		if value := strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0])); value != "" {
			return value
		}
	}

	if r.TLS != nil {
		return "https"
	}

	if r.URL != nil && r.URL.Scheme != "" {
		return strings.ToLower(r.URL.Scheme)
	}

	return "http"
}

func requestHost(r *http.Request) string {
	if r == nil {
		return ""
	}

	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwarded != "" {
		if host := strings.TrimSpace(strings.Split(forwarded, ",")[0]); host != "" {
			return host
		}
	}

	if r.Host != "" {
		return r.Host
	}

	if r.URL != nil {
		return r.URL.Host
	}

	return ""
}

// buildCanonicalURL drops fragments and tracking parameters.
func (h *TemplateHandler) buildCanonicalURL(base string, requestURL *url.URL) string {
	if requestURL == nil {
		return strings.TrimSuffix(base, "/")
	}

	cleaned := *requestURL
	cleaned.Fragment = ""

	if query := cleaned.Query(); len(query) > 0 {
		for key := range query {
			lower := strings.ToLower(key)
			if strings.HasPrefix(lower, "utm_") || lower == "fbclid" || lower == "gclid" {
				query.Del(key)
			}
		}
		cleaned.RawQuery = query.Encode()
	}

	if cleaned.IsAbs() {
		return cleaned.String()
	}

	path := utils.NormalizePath(cleaned.Path)
	canonical := path
	if cleaned.RawQuery != "" {
		canonical += "?" + cleaned.RawQuery
	}

	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return canonical
	}
	return base + canonical
}

func getString(data gin.H, key string) string {
	if value, ok := data[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
