package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticket-api/internal/observability"
)

// ServerOptions configures NewApp.
type ServerOptions struct {
	Name           string
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration
	CORSOrigins    string
	Routes         RouteConfig
}

// NewApp builds the fiber application with middlewares and routes.
func NewApp(opts ServerOptions) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, opts.Logger, opts.Metrics, opts.RequestTimeout, opts.CORSOrigins)
	RegisterRoutes(app, opts.Routes)
	return app
}
