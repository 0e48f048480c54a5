package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nwoyi/staffing-api/internal/api/http/handlers"
	"github.com/Nwoyi/staffing-api/internal/observability"
	"github.com/Nwoyi/staffing-api/internal/validation"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Staff   *handlers.StaffHandler
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	staff := app.Group("/staff")
	staff.Post("/", validation.Middleware(validation.CreateStaff), cfg.Staff.Create)
	staff.Get("/", validation.Middleware(validation.ListStaff), cfg.Staff.List)
	staff.Get("/:id", validation.Middleware(validation.GetStaff), cfg.Staff.Get)
	staff.Put("/:id", validation.Middleware(validation.UpdateStaff), cfg.Staff.Update)
	staff.Delete("/:id", validation.Middleware(validation.DeleteStaff), cfg.Staff.Delete)
}
