// Package gateway provides the HTTP gateway server.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	v1 "nudge/api/v1"
	"nudge/internal/config"
	"nudge/internal/engine"
	"nudge/internal/gateway/handlers"
	"nudge/internal/gateway/middleware"
	"nudge/pkg/logger"
)

// Server represents the HTTP gateway server.
type Server struct {
	httpServer  *http.Server
	router      *mux.Router
	watcher     *Watcher
	config      *config.Config
	rateLimiter *middleware.RateLimiter
	apiRouter   *v1.Router
}

// NewServer creates a new gateway server wired to the given engine.
func NewServer(cfg *config.Config, eng *engine.Engine, version string) *Server {
	router := mux.NewRouter()

	rlConfig := middleware.RateLimiterConfig{
		RequestsPerMinute: cfg.Gateway.RateLimit.RequestsPerMinute,
		Burst:             cfg.Gateway.RateLimit.Burst,
		Enabled:           cfg.Gateway.RateLimit.Enabled,
		CleanupInterval:   cfg.Gateway.RateLimit.CleanupInterval,
	}
	if rlConfig.RequestsPerMinute == 0 {
		rlConfig.RequestsPerMinute = 60
	}
	if rlConfig.Burst == 0 {
		rlConfig.Burst = 10
	}
	if rlConfig.CleanupInterval == 0 {
		rlConfig.CleanupInterval = 5 * time.Minute
	}
	rateLimiter := middleware.NewRateLimiter(rlConfig)

	// A nil engine must stay nil inside the interface so the chat handler
	// can detect it.
	var turns v1.TurnHandler
	if eng != nil {
		turns = eng
	}

	// Middleware chain: Recovery -> Logging -> CORS -> RateLimit
	handler := middleware.Recovery(
		middleware.Logging(
			middleware.CORS(
				rateLimiter.RateLimit(router),
			),
		),
	)

	server := &Server{
		httpServer: &http.Server{
			Handler:      handler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		router:      router,
		config:      cfg,
		rateLimiter: rateLimiter,
		apiRouter:   v1.NewRouter(turns),
	}

	server.setupRoutes(version)

	return server
}

// setupRoutes configures the server routes.
func (s *Server) setupRoutes(version string) {
	s.apiRouter.RegisterRoutes(s.router)

	s.router.HandleFunc("/health", handlers.HealthHandler(version)).Methods(http.MethodGet)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	handlers.InitStartTime()

	addr := fmt.Sprintf("%s:%d", s.config.Gateway.Host, s.config.Gateway.Port)
	s.httpServer.Addr = addr

	logger.Info().
		Str("addr", addr).
		Msg("Starting gateway server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info().Msg("Shutting down gateway server")

	if s.watcher != nil {
		s.watcher.Stop()
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}

// SetWatcher sets the config file watcher for hot reload.
func (s *Server) SetWatcher(w *Watcher) {
	s.watcher = w
}

// Router returns the underlying router for testing.
func (s *Server) Router() *mux.Router {
	return s.router
}
