// Package api publishes the generated block lists over HTTP for consumers
// that pull them directly instead of reading the filesystem.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/entra-tools/ip-block-lists/internal/config"
	"github.com/entra-tools/ip-block-lists/internal/log"
)

// Server represents the list-publishing HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *config.Config
}

// NewServer creates a new list-publishing server
func NewServer(cfg *config.Config, bindAddr string) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
	}

	// Setup middleware
	s.router.Use(Recovery)
	s.router.Use(Logger)

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         bindAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	h := NewHandler(s.cfg)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/providers", h.GetProviders)
		r.Get("/providers/{name}", h.GetProviderList)
		r.Get("/chunks", h.GetChunks)
		r.Get("/chunks/{provider}/{part}", h.GetChunk)
	})

	// Health check endpoint at root
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// Router returns the configured HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Infof("[API] Starting server on %s", s.httpServer.Addr)
	log.Infof("[API] Example: curl http://%s/api/v1/providers", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
