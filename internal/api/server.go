package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lumina/internal/chat"
	"lumina/internal/config"
	"lumina/internal/journal"
	"lumina/internal/snapshot"
)

// Deps are the collaborators the handlers read and write.
// Journal may be nil when the journal is disabled.
type Deps struct {
	Snapshots *snapshot.Store
	Responder *chat.Responder
	Journal   *journal.Store
}

// Server represents the HTTP API server
type Server struct {
	router    *http.ServeMux
	server    *http.Server
	addr      string
	logger    *slog.Logger
	config    *config.Config
	snapshots *snapshot.Store
	responder *chat.Responder
	journal   *journal.Store
	startedAt time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, deps Deps, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if deps.Snapshots == nil {
		deps.Snapshots = snapshot.NewStore(snapshotDefaults(cfg.Snapshot))
	}
	if deps.Responder == nil {
		deps.Responder = chat.NewResponder(nil, "")
	}

	s := &Server{
		addr:      cfg.Server.Addr(),
		logger:    logger,
		config:    cfg,
		snapshots: deps.Snapshots,
		responder: deps.Responder,
		journal:   deps.Journal,
		router:    http.NewServeMux(),
		startedAt: time.Now(),
	}

	// Register routes
	s.registerRoutes()

	handler, err := s.applyMiddleware(s.router)
	if err != nil {
		return nil, err
	}

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	return s, nil
}

// snapshotDefaults converts the configured seed values.
func snapshotDefaults(c config.SnapshotConfig) snapshot.Defaults {
	return snapshot.Defaults{
		Health:          c.Health,
		Security:        c.Security,
		Maintainability: c.Maintainability,
		IssuesOpen:      c.IssuesOpen,
		IssuesFixed:     c.IssuesFixed,
		Complexity:      c.Complexity,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully")
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) (http.Handler, error) {
	// Apply middleware in reverse order (last one wraps first)
	if s.config.Auth.Enabled {
		handler = AuthMiddleware(s.config.Auth.TokenHash, protectedPaths, s.logger)(handler)
	}
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	if s.config.Server.Compress {
		compress, err := CompressionMiddleware()
		if err != nil {
			return nil, fmt.Errorf("failed to build compression middleware: %w", err)
		}
		handler = compress(handler)
	}
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware(s.config.Server.CorsOrigins)(handler)
	return handler, nil
}
