package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apphttp "advisory_portal_backend/internal/http"
	"advisory_portal_backend/platform/logger"
	"advisory_portal_backend/platform/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string               { return ":0" }
func (testConfig) GetCORSAllowAll() bool             { return false }
func (testConfig) GetCORSOrigins() []string          { return []string{"https://advisory.example.com"} }
func (testConfig) GetCORSAllowCreds() bool           { return false }
func (testConfig) GetShutdownTimeout() time.Duration { return time.Second }
func (testConfig) GetJWTAccessSecret() string        { return "secret" }
func (testConfig) GetJWTIssuer() string              { return "" }
func (testConfig) GetPublicRateLimit() rate.Limit    { return 100 }
func (testConfig) GetPublicRateBurst() int           { return 100 }
func (testConfig) GetLeadRateLimit() rate.Limit      { return 1 }
func (testConfig) GetLeadRateBurst() int             { return 1 }

type testHealth struct{ err error }

func (h testHealth) Ping(context.Context) error { return h.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }
func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Admin.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "admin pong") })
}

func newEngine(health apphttp.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	app := &apphttp.App{
		Config:  testConfig{},
		Logger:  logger.New("test"),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	}
	return New(app, NewLimiters(app))
}

func get(engine *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutesAreMounted(t *testing.T) {
	engine := newEngine(testHealth{})

	if w := get(engine, "/api/v1/public/ping", nil); w.Code != http.StatusOK {
		t.Fatalf("public ping: %d", w.Code)
	}
	if w := get(engine, "/api/v1/admin/ping", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("admin ping without token: %d", w.Code)
	}
}

func TestReadiness(t *testing.T) {
	if w := get(newEngine(testHealth{}), "/api/ready", nil); w.Code != http.StatusOK {
		t.Fatalf("ready: %d", w.Code)
	}
	if w := get(newEngine(testHealth{err: errors.New("down")}), "/api/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready with failing db: %d", w.Code)
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	w := get(newEngine(nil), "/api/v1/public/ping", map[string]string{"Origin": "https://advisory.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://advisory.example.com" {
		t.Fatalf("allow origin = %q", got)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers")
	}

	w = get(newEngine(nil), "/api/v1/public/ping", map[string]string{"Origin": "https://evil.example.com"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected disallowed origin to be rejected, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	if w := get(newEngine(nil), "/metrics", nil); w.Code != http.StatusNotFound {
		t.Fatalf("metrics should not be mounted without a registry, got %d", w.Code)
	}

	gin.SetMode(gin.TestMode)
	app := &apphttp.App{
		Config:  testConfig{},
		Logger:  logger.New("test"),
		Metrics: metrics.New(),
		Modules: []apphttp.Module{pingModule{}},
	}
	engine := New(app, NewLimiters(app))
	get(engine, "/api/v1/public/ping", nil)

	w := get(engine, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `route="/api/v1/public/ping"`) {
		t.Fatalf("expected ping request to be recorded")
	}
}
