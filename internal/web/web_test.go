package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"swcal/internal/config"
	"swcal/internal/pipeline"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(testConfig(t))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("/health = %d, want 200", rec.Code)
	}
}

func TestServesCalendarArtifact(t *testing.T) {
	cfg := testConfig(t)
	ics := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, pipeline.FileCalendar), []byte(ics), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := NewServer(cfg)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishlist.ics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("/wishlist.ics = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/calendar; charset=utf-8" {
		t.Errorf("content type = %q", got)
	}
	if rec.Body.String() != ics {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestBasicAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.BasicAuth = &config.BasicAuthConfig{Username: "u", Password: "p"}
	srv := NewServer(cfg)

	// Artifacts require credentials.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishlist.ics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated request = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/wishlist.ics", nil)
	req.SetBasicAuth("u", "p")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code == http.StatusUnauthorized {
		t.Errorf("authenticated request rejected")
	}

	// /health stays open.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health with auth configured = %d, want 200", rec.Code)
	}
}
