package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/photo-selector/internal/config"
	"github.com/kozaktomas/photo-selector/internal/export"
	"github.com/kozaktomas/photo-selector/internal/gallery"
	"github.com/kozaktomas/photo-selector/internal/logging"
	"github.com/kozaktomas/photo-selector/internal/web/handlers"
	"github.com/kozaktomas/photo-selector/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	events     *handlers.Broadcaster
	gallery    *handlers.GalleryHandler
	logger     *log.Logger
}

// NewServer creates a web server exposing ctrl. The controller must already
// be loaded; the server becomes its only writer.
func NewServer(cfg *config.Config, ctrl *gallery.Controller, meta export.Meta, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	r := chi.NewRouter()
	events := handlers.NewBroadcaster()

	s := &Server{
		config:  cfg,
		router:  r,
		events:  events,
		gallery: handlers.NewGalleryHandler(ctrl, meta, events, cfg.Web.FlushRatePerMinute, logger),
		logger:  logger,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Web.Host, strconv.Itoa(cfg.Web.Port)),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting web server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown closes event streams, stops the server and flushes the
// committed selections one last time.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down web server")

	s.events.Close()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := s.gallery.Persist(ctx); err != nil {
		return fmt.Errorf("flushing selections: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
