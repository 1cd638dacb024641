// Package api exposes the template hub over HTTP. Handlers are thin: they
// decode requests, call the service layer, and encode responses. Business
// rules live in internal/service; this package only translates service
// errors into status codes and field-level error payloads.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ignite/template-hub/internal/auth"
	"github.com/ignite/template-hub/internal/config"
	"github.com/ignite/template-hub/internal/service/campaign"
	"github.com/ignite/template-hub/internal/service/template"
	"github.com/ignite/template-hub/internal/service/workspace"
	"github.com/redis/go-redis/v9"
)

// Server represents the API server.
type Server struct {
	config      config.ServerConfig
	handlers    *Handlers
	server      *http.Server
	authManager *auth.Manager
}

// Handlers bundles the services the HTTP layer dispatches to.
type Handlers struct {
	Templates  *template.Service
	Campaigns  *campaign.Service
	Workspaces *workspace.Service
}

// NewServer creates a new API server. limiter may be nil to disable rate
// limiting (tests, local runs without Redis).
func NewServer(cfg config.ServerConfig, h *Handlers, authManager *auth.Manager, rdb *redis.Client, rl config.RateLimitConfig) *Server {
	var limiter *RateLimiter
	if rl.Enabled && rdb != nil {
		limiter = NewRateLimiter(rdb, rl.RequestsPerMinute)
	}
	router := SetupRoutes(h, authManager, limiter)

	return &Server{
		config:      cfg,
		handlers:    h,
		authManager: authManager,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.GetHost(), cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	log.Printf("[api.Server] listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("[api.Server] shutting down")
	return s.server.Shutdown(ctx)
}
