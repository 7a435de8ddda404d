package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/JaimeStill/metalid/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"root redirects to app", "GET", "/", http.StatusFound},
		{"healthz", "GET", "/healthz", http.StatusOK},
		{"readyz before startup", "GET", "/readyz", http.StatusServiceUnavailable},
		{"app form", "GET", "/app/", http.StatusOK},
		{"api options", "GET", "/api/identify/options", http.StatusOK},
		{"api spec", "GET", "/api/openapi.json", http.StatusOK},
		{"api reference", "GET", "/scalar/", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRootRedirectLocation(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("Location"); got != "/app/" {
		t.Errorf("location: got %s, want /app/", got)
	}
}

func TestReadyAfterStartup(t *testing.T) {
	srv := newTestServer(t)

	srv.infra.Lifecycle.WaitForStartup()

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}

	if err := srv.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after shutdown: got %d, want 503", rec.Code)
	}
}
