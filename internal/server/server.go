// Package server exposes the RiskSheet REST API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/app"
	"github.com/NawraaSayed/RiskSheet/internal/common"
)

// Server wraps the HTTP server and application reference.
type Server struct {
	app    *app.App
	server *http.Server
	logger *common.Logger
}

// NewServer creates a new HTTP REST API server.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		logger: a.Logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, a.Logger)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting REST API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Positions
	mux.HandleFunc("/api/positions", s.handlePositions)
	mux.HandleFunc("/api/positions/", s.handlePositionDelete)

	// Cash
	mux.HandleFunc("/api/cash", s.handleCash)

	// Sector allocation targets
	mux.HandleFunc("/api/sector-allocations", s.handleSectorAllocations)

	// Risk pipeline
	mux.HandleFunc("/api/recalculate", s.handleRecalculate)
}
