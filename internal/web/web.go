// Package web exposes the generated run artifacts over HTTP in daemon mode,
// so calendar clients can subscribe to the feed by URL.
package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"swcal/internal/config"
	appLog "swcal/internal/log"
	"swcal/internal/pipeline"
)

// artifactRoutes maps URL paths to files inside the output directory.
var artifactRoutes = map[string]struct {
	file        string
	contentType string
}{
	"/wishlist.ics":   {pipeline.FileCalendar, "text/calendar; charset=utf-8"},
	"/history.json":   {pipeline.FileHistory, "application/json"},
	"/chart.png":      {pipeline.FileChartPNG, "image/png"},
	"/stack.png":      {pipeline.FileStackPNG, "image/png"},
	"/successful.txt": {pipeline.FileSuccess, "text/plain; charset=utf-8"},
	"/failed.txt":     {pipeline.FileFailures, "text/plain; charset=utf-8"},
}

// Server serves run artifacts and a health endpoint.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux
}

// NewServer constructs a new Server reading artifacts from cfg.OutputDir.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	for path, route := range artifactRoutes {
		file := filepath.Join(s.cfg.OutputDir, route.file)
		contentType := route.contentType
		s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			http.ServeFile(w, r, file)
		})
	}
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="swcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	s := NewServer(cfg)
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
