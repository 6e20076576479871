package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "phonefield/internal/http"
	"phonefield/internal/phonefield"
	"phonefield/platform/config"
	"phonefield/platform/events"
	"phonefield/platform/httpkit"
	"phonefield/platform/logger"
	"phonefield/platform/validator"

	"github.com/gin-gonic/gin"
)

func newApp(t *testing.T, cfg *config.Config) *apphttp.App {
	t.Helper()
	log := logger.Discard()
	bus := events.NewInMemoryBus(log)
	module, err := phonefield.NewModule(cfg, bus, validator.New(), log)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	return &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: bus,
		Modules:  []apphttp.Module{module},
	}
}

func TestRouterServesHealthAndModules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := New(newApp(t, &config.Config{CORSAllowAll: true, ShowCode: true, ShowFlag: true}))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(httpkit.HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers")
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/countries/ug", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "+256") {
		t.Fatalf("unexpected country response %d %s", w.Code, w.Body.String())
	}
}

func TestRouterRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := New(newApp(t, &config.Config{CORSAllowAll: true, RateLimitRPS: 0.001, RateLimitBurst: 1}))

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}

func TestCORSOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := New(newApp(t, &config.Config{CORSOrigins: []string{"https://app.example.com"}}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin, got %d", w.Code)
	}
}
