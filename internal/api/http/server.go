package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/internal/api/http/handlers"
	"github.com/Nwoyi/staffing-api/internal/config"
	"github.com/Nwoyi/staffing-api/internal/observability"
	"github.com/Nwoyi/staffing-api/internal/repository"
	"github.com/Nwoyi/staffing-api/internal/service"
)

// ServerDeps bundles what the HTTP layer needs to serve requests.
type ServerDeps struct {
	App          config.AppConfig
	CORS         config.CORSConfig
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	StaffService *service.StaffService
	// Store is pinged by the readiness probe when it implements repository.Pinger.
	Store repository.StaffRepository
}

// NewServer builds the Fiber application with middleware and routes registered.
func NewServer(deps ServerDeps) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               deps.App.Name,
		DisableStartupMessage: true,
	})

	RegisterMiddlewares(app, logger, deps.Metrics, MiddlewareConfig{
		ExposeErrorDetails: deps.App.IsDevelopment(),
		AllowOrigins:       deps.CORS.AllowOrigins,
	})

	var pinger repository.Pinger
	if p, ok := deps.Store.(repository.Pinger); ok {
		pinger = p
	}

	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(deps.App.Name, deps.App.Version, pinger),
		Staff:   handlers.NewStaffHandler(deps.StaffService),
		Metrics: deps.Metrics,
	})
	return app
}
