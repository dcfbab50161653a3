package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"altaviva-site/internal/config"
	"altaviva-site/internal/content"
	"altaviva-site/internal/layout"
	"altaviva-site/internal/models"
	"altaviva-site/internal/prefstore"
	"altaviva-site/internal/ui"
	"altaviva-site/pkg/utils"
	"altaviva-site/pkg/validator"
	"altaviva-site/web"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Init()
}

// failingProvider hands out storage whose writes always fail.
type failingProvider struct{}

func (failingProvider) Name() string     { return "failing" }
func (failingProvider) ClientSide() bool { return false }
func (failingProvider) ForRequest(*gin.Context) layout.Storage {
	return failingStorage{}
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, error) { return "", layout.ErrPreferenceNotFound }
func (failingStorage) Set(string, string) error   { return errors.New("disk full") }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	tmpl, err := utils.LoadTemplates(web.Templates(), utils.GetTemplateFuncs(web.AssetModTime))
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	pages := content.NewService(fstest.MapFS{
		"Home.md":    {Data: []byte("# Início\n\nBem-vindo.\n")},
		"Pacotes.md": {Data: []byte("# Pacotes\n\nRoteiros.\n")},
	}, nil)

	cfg := &config.Config{SiteURL: "http://altaviva.example", SiteName: "Altaviva Turismo", EnableLive: true}
	provider := &prefstore.CookieProvider{MaxAge: 3600}

	handler, err := NewTemplateHandler(cfg, tmpl, pages, provider)
	if err != nil {
		t.Fatalf("NewTemplateHandler returned error: %v", err)
	}
	handler.SetPrimitives(ui.Primitives())
	handler.SetClock(func() time.Time { return time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC) })

	themes := NewThemeHandler(provider)

	router := gin.New()
	router.GET("/", handler.RenderIndex)
	router.GET("/:page", handler.RenderPage)
	router.GET("/api/v1/theme", themes.Get)
	router.POST("/api/v1/theme/toggle", themes.Toggle)
	router.PUT("/api/v1/theme", themes.Set)
	router.GET("/api/v1/navigation", NewNavigationHandler(nil).List)
	router.NoRoute(handler.RenderNotFound)
	return router
}

func TestRenderIndexRedirectsHome(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/Home" {
		t.Fatalf("expected redirect to /Home, got %d %q", recorder.Code, recorder.Header().Get("Location"))
	}
}

func TestRenderPageMarksActiveEntry(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/Pacotes", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()

	if !strings.Contains(body, `<a href="/Pacotes" class="nav-link active" data-path="/Pacotes" aria-current="page">`) {
		t.Fatalf("expected Pacotes link to be active")
	}
	if strings.Contains(body, `<a href="/Home" class="nav-link active"`) {
		t.Fatalf("expected Home link to be inactive")
	}
	if strings.Count(body, "nav-link active") != 1 {
		t.Fatalf("expected exactly one active desktop link")
	}
	if !strings.Contains(body, "Roteiros.") {
		t.Fatalf("expected page content in shell")
	}
	if !strings.Contains(body, "© 2030 Altaviva Turismo") {
		t.Fatalf("expected copyright with clock year")
	}
	if !strings.Contains(body, `<html lang="pt-BR" class="" data-theme="light">`) {
		t.Fatalf("expected light theme without stored preference")
	}
	if !strings.Contains(body, `data-live="/live"`) {
		t.Fatalf("expected live endpoint advertised")
	}
	if recorder.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store cache header")
	}
}

func TestRenderPageAppliesStoredTheme(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/Home", nil)
	req.AddCookie(&http.Cookie{Name: layout.ThemeStorageKey, Value: "dark"})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	body := recorder.Body.String()
	if !strings.Contains(body, `class="dark" data-theme="dark"`) {
		t.Fatalf("expected dark root class from cookie")
	}
	if !strings.Contains(body, "plane--dark") {
		t.Fatalf("expected dark plane icon")
	}
}

func TestRenderPageNotFoundInsideShell(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/Inexistente", nil))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "Página não encontrada") || !strings.Contains(body, `id="navbar"`) {
		t.Fatalf("expected 404 page rendered inside the shell")
	}
	if strings.Contains(body, "nav-link active") {
		t.Fatalf("expected no active link on unknown page")
	}
}

func TestNoRouteAPIReturnsJSON(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if recorder.Code != http.StatusNotFound || !strings.Contains(recorder.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("expected JSON 404, got %d %s", recorder.Code, recorder.Header().Get("Content-Type"))
	}
}

func decodeTheme(t *testing.T, recorder *httptest.ResponseRecorder) models.ThemeResponse {
	t.Helper()
	var response models.ThemeResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestThemeToggleWritesCookie(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", nil))

	response := decodeTheme(t, recorder)
	if response.Theme != "dark" || !response.Persisted || response.Store != "cookie" {
		t.Fatalf("unexpected response %+v", response)
	}
	if len(response.RootClasses) != 1 || response.RootClasses[0] != layout.DarkClass {
		t.Fatalf("expected dark root class, got %v", response.RootClasses)
	}
	if cookie := recorder.Header().Get("Set-Cookie"); !strings.Contains(cookie, "theme=dark") {
		t.Fatalf("expected theme cookie, got %q", cookie)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", nil)
	req.AddCookie(&http.Cookie{Name: layout.ThemeStorageKey, Value: "dark"})
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if response := decodeTheme(t, recorder); response.Theme != "light" || len(response.RootClasses) != 0 {
		t.Fatalf("expected toggle back to light, got %+v", response)
	}
}

func TestThemeSetValidatesInput(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"sepia"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown theme, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	if response := decodeTheme(t, recorder); response.Theme != "dark" {
		t.Fatalf("expected dark theme, got %+v", response)
	}
}

func TestThemeToggleWriteFailureStillToggles(t *testing.T) {
	router := gin.New()
	router.POST("/toggle", NewThemeHandler(failingProvider{}).Toggle)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/toggle", nil))

	response := decodeTheme(t, recorder)
	if response.Theme != "dark" || response.Persisted {
		t.Fatalf("expected unpersisted dark theme, got %+v", response)
	}
}

func TestNavigationListFlagsActiveEntry(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/navigation?path=/Contato/", nil))

	var payload struct {
		Navigation []models.NavigationEntry `json:"navigation"`
		QuickLinks []models.NavigationEntry `json:"quick_links"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(payload.Navigation) != 8 || len(payload.QuickLinks) != 5 {
		t.Fatalf("unexpected sizes %d/%d", len(payload.Navigation), len(payload.QuickLinks))
	}

	active := 0
	for _, entry := range payload.Navigation {
		if entry.Active {
			active++
			if entry.Path != "/Contato" {
				t.Fatalf("unexpected active entry %s", entry.Path)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active entry, got %d", active)
	}
}
