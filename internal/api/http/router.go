package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticket-api/internal/api/http/handlers"
	"github.com/helpdesk-labs/ticket-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Tickets   *handlers.TicketsHandler
	Metrics   *handlers.MetricsHandler
	Tokens    *auth.TokenManager
	StaticDir string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/healthz", cfg.Health.Healthz)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	api := app.Group("/api", auth.Authenticate(cfg.Tokens))
	api.Post("/login", cfg.Auth.Login)
	api.Get("/me", auth.RequireAuth(), cfg.Auth.Me)

	tickets := api.Group("/tickets", auth.RequireAuth())
	tickets.Get("", cfg.Tickets.List)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.Delete)

	if cfg.StaticDir != "" {
		registerStatic(app, cfg.StaticDir)
	}
}

// registerStatic serves the web client and falls back to index.html for
// client-side routes. Unknown /api paths stay 404.
func registerStatic(app *fiber.App, dir string) {
	app.Static("/", dir)
	index := filepath.Join(dir, "index.html")
	app.Get("*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}
