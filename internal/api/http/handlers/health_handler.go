package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Nwoyi/staffing-api/internal/repository"
)

// HealthHandler responds to the root banner and to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	store       repository.Pinger
}

// NewHealthHandler returns a new handler instance. store may be nil for process-local stores.
func NewHealthHandler(serviceName, version string, store repository.Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Staffing API is running",
	})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the record store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.store == nil {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": fiber.Map{"store": "ok"},
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": fiber.Map{"store": err.Error()},
		})
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{"store": "ok"},
	})
}
