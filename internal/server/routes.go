package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"asn2ip/internal/handlers"
	"asn2ip/internal/handlers/api"
	"asn2ip/internal/middleware"
)

// Deps are the collaborators the routes are served by. History and Pinger
// are nil when no database is configured.
type Deps struct {
	Runner   handlers.Runner
	Artifact handlers.ArtifactReader
	History  handlers.HistoryStore
	Pinger   handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	// Initialize handlers
	lookupHandler := handlers.NewLookupHandler(deps.Runner, deps.Artifact, s.Cfg)
	probeHandler := handlers.NewProbeHandler(deps.Pinger)
	apiLookupHandler := api.NewLookupHandler(deps.Runner)

	// Kubernetes health probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - only when OIDC is configured
	protected := func(c fiber.Ctx) error { return c.Next() }
	if s.Cfg.AuthEnabled() {
		authMiddleware := middleware.NewAuthMiddleware()
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}

		s.App.Get("/login", authHandler.LoginPage)
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
		protected = authMiddleware.RequireAuth
	} else {
		slog.Info("OIDC authentication is disabled, set OIDC_ISSUER to enable")
	}

	// Frontend routes
	s.App.Get("/", protected, lookupHandler.Index)
	s.App.Post("/lookup", protected, lookupHandler.Run)
	s.App.Get("/download", protected, lookupHandler.Download)

	// JSON API
	v1 := s.App.Group("/api/v1", protected)
	v1.Get("/lookup", apiLookupHandler.Lookup)

	// Run history - only when a database is configured
	if deps.History != nil {
		historyHandler := handlers.NewHistoryHandler(deps.History, s.Cfg)
		runsHandler := api.NewRunsHandler(deps.History)

		s.App.Get("/history", protected, historyHandler.Index)
		v1.Get("/runs", runsHandler.List)
		v1.Get("/runs/:id", runsHandler.Get)
	}

	return nil
}
