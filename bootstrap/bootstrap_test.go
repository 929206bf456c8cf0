package bootstrap_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/artpar/billmock/bootstrap"
	"github.com/artpar/billmock/config"
)

func TestBootstrap_Integration(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Logging.Level = "error"

	app, err := bootstrap.New(cfg)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	if app.HTTPServer == nil {
		t.Fatal("HTTPServer should not be nil")
	}
	if app.HTTPServer.Addr != "0.0.0.0:3000" {
		t.Errorf("addr = %s, want 0.0.0.0:3000", app.HTTPServer.Addr)
	}

	// Drive requests through the wired handler without binding a port
	req := httptest.NewRequest(http.MethodGet, "/intern/ping", nil)
	w := httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(w, req)
	if w.Code != 200 || w.Body.String() != "1" {
		t.Errorf("ping = %d %q, want 200 \"1\"", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/441759/evn/2020-01", nil)
	req.SetBasicAuth("testuser", "testpass")
	w = httptest.NewRecorder()
	app.HTTPServer.Handler.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Errorf("evn = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestBootstrap_GracefulShutdown(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Logging.Level = "error"

	app, err := bootstrap.New(cfg)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	if err := app.Shutdown(); err != nil {
		t.Errorf("shutdown error: %v", err)
	}
}

func TestBootstrap_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "billmock.yaml")
	content := `
logging:
  level: "error"
rate_limit:
  max_requests: 3
  window_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	app, err := bootstrap.NewWithHotReload(path)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer app.Shutdown()

	if app.Config.RateLimit.MaxRequests != 3 {
		t.Errorf("MaxRequests = %d, want 3", app.Config.RateLimit.MaxRequests)
	}
}
