package web

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/photo-selector/internal/web/handlers"
	"github.com/kozaktomas/photo-selector/internal/web/static"
)

func (s *Server) setupRoutes() {
	configHandler := handlers.NewConfigHandler(s.config)
	imagesHandler := handlers.NewImagesHandler(s.config.Catalog.ImagesDir)
	g := s.gallery

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Event stream is long-lived and must not be cut by the timeout.
		r.Get("/events", g.Events)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(time.Minute))

			r.Get("/config", configHandler.Get)

			// Gallery
			r.Get("/photos", g.Photos)
			r.Get("/stats", g.Stats)
			r.Get("/state", g.State)
			r.Put("/filter", g.SetFilter)

			// Detail view
			r.Post("/photos/{index}/open", g.Open)
			r.Post("/draft/toggle", g.Toggle)
			r.Post("/draft/save", g.Save)
			r.Post("/navigate", g.Navigate)
			r.Post("/close", g.Close)

			// Selections
			r.Delete("/selections", g.Clear)
			r.Post("/flush", g.Flush)
			r.Get("/export/{format}", g.Export)
		})
	})

	s.router.Get("/images/*", imagesHandler.Serve)

	s.router.Get("/*", s.serveSPA)
}

var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
}

// serveSPA serves the embedded front page, falling back to index.html for
// client-side routes.
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	data, err := static.ReadFile(name)
	if err != nil {
		if strings.HasPrefix(name, "/assets/") {
			http.NotFound(w, r)
			return
		}
		if data, err = static.Index(); err != nil {
			http.NotFound(w, r)
			return
		}
		name = "/index.html"
	}
	if name == "/" {
		name = "/index.html"
	}

	contentType, ok := contentTypes[strings.ToLower(path.Ext(name))]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if strings.HasPrefix(name, "/assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
