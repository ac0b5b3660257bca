package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/config"
)

func TestServerRoutes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = filepath.Join(t.TempDir(), "data")

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv, err := NewServer(cfg, log)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	if srv.GetStore() == nil {
		t.Fatal("GetStore returned nil")
	}

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status: code = %d, body %s", w.Code, w.Body.String())
	}

	// Root redirects to the dashboard.
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTemporaryRedirect {
		t.Errorf("root: code = %d, want 307", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("root redirect = %q", loc)
	}

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK {
		t.Errorf("dashboard: code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "echarts") {
		t.Error("dashboard body is not a chart page")
	}

	// CORS preflight.
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/status", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight: code = %d, want 204", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("allow origin = %q", origin)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "PUT") {
		t.Errorf("allow methods = %q", methods)
	}
}
