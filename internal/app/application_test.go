package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"altaviva-site/internal/config"
	"altaviva-site/internal/models"
	"altaviva-site/pkg/validator"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Init()

	cfg := config.New()
	cfg.Environment = "test"
	cfg.ThemeStore = config.ThemeStoreCookie
	cfg.EnableCache = false
	cfg.ContentDir = ""
	cfg.EnableLive = true
	cfg.EnableMetrics = true

	application, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})
	return application
}

func serve(app *Application, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	app.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.ThemeStore = "filesystem"

	if _, err := New(cfg); err == nil {
		t.Fatalf("expected invalid theme store to be rejected")
	}
}

func TestRouterServesPagesInsideShell(t *testing.T) {
	app := newTestApplication(t)

	recorder := serve(app, http.MethodGet, "/Home", map[string]string{"Accept": "text/html"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `id="navbar"`) || !strings.Contains(body, "Altaviva") {
		t.Fatalf("expected page rendered inside the shell")
	}
	if recorder.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	if !strings.Contains(recorder.Header().Get("Set-Cookie"), "visitor_id=") {
		t.Fatalf("expected visitor cookie to be issued")
	}
}

func TestRouterRedirectsIndex(t *testing.T) {
	app := newTestApplication(t)

	recorder := serve(app, http.MethodGet, "/", nil)
	if recorder.Code != http.StatusFound || recorder.Header().Get("Location") != "/Home" {
		t.Fatalf("expected redirect to /Home, got %d", recorder.Code)
	}
}

func TestRouterServesEmbeddedStatic(t *testing.T) {
	app := newTestApplication(t)

	recorder := serve(app, http.MethodGet, "/static/css/site.css", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected stylesheet, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "navbar--scrolled") {
		t.Fatalf("expected site stylesheet body")
	}
}

func TestRouterThemeAPI(t *testing.T) {
	app := newTestApplication(t)

	recorder := serve(app, http.MethodGet, "/api/v1/theme", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var response models.ThemeResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Theme != "light" || response.Store != config.ThemeStoreCookie {
		t.Fatalf("unexpected theme response %+v", response)
	}
	if recorder.Header().Get("X-Robots-Tag") == "" {
		t.Fatalf("expected API responses to be marked noindex")
	}
}

func TestRouterNotFound(t *testing.T) {
	app := newTestApplication(t)

	api := serve(app, http.MethodGet, "/api/v1/unknown", nil)
	if api.Code != http.StatusNotFound || !strings.Contains(api.Body.String(), "not found") {
		t.Fatalf("expected JSON 404 for API routes, got %d %s", api.Code, api.Body.String())
	}

	page := serve(app, http.MethodGet, "/NoSuchPage", map[string]string{"Accept": "text/html"})
	if page.Code != http.StatusNotFound || !strings.Contains(page.Body.String(), `id="navbar"`) {
		t.Fatalf("expected 404 page inside the shell, got %d", page.Code)
	}
}

func TestHealthReportsStore(t *testing.T) {
	app := newTestApplication(t)

	recorder := serve(app, http.MethodGet, "/health", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected healthy status, got %d", recorder.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if body["status"] != "healthy" || body["store"] != config.ThemeStoreCookie {
		t.Fatalf("unexpected health body %v", body)
	}
	if _, ok := body["live_sessions"]; !ok {
		t.Fatalf("expected live session count")
	}
	if jobs, ok := body["background_jobs"].(float64); !ok || jobs != 0 {
		t.Fatalf("expected idle background job count, got %v", body["background_jobs"])
	}
}
