package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/template-hub/internal/auth"
)

// SetupRoutes configures all API routes. authManager and limiter may be nil;
// a nil authManager leaves /api open (tests only).
func SetupRoutes(h *Handlers, authManager *auth.Manager, limiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		if authManager != nil {
			r.Use(authManager.RequireAuth)
		}

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", h.HandleListWorkspaces)
			r.Post("/", h.HandleCreateWorkspace)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Use(RequireWorkspaceAccess)
				r.Get("/", h.HandleGetWorkspace)

				r.Route("/templates", func(r chi.Router) {
					r.Get("/", h.HandleListTemplates)
					r.Post("/", h.HandleCreateTemplate)
					r.Get("/{templateID}", h.HandleGetTemplate)
					r.Put("/{templateID}", h.HandleUpdateTemplate)
					r.Delete("/{templateID}", h.HandleDeleteTemplate)
					r.Post("/{templateID}/preview", h.HandlePreviewTemplate)
				})

				r.Route("/campaigns", func(r chi.Router) {
					r.Get("/", h.HandleListCampaigns)
					r.Post("/", h.HandleCreateCampaign)
					r.Get("/{campaignID}", h.HandleGetCampaign)
					r.Delete("/{campaignID}", h.HandleDeleteCampaign)
					r.Post("/{campaignID}/cancel", h.HandleCancelCampaign)
				})
			})
		})
	})

	return r
}
