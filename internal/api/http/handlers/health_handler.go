package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger is implemented by the backing stores checked for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	postgres Pinger
	redis    Pinger
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(postgres, redis Pinger) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "status": "ok"})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	for name, store := range map[string]Pinger{"postgres": h.postgres, "redis": h.redis} {
		if store == nil {
			checks[name] = "not configured"
			continue
		}
		if err := store.Ping(c.Context()); err != nil {
			checks[name] = "unavailable"
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"success": healthy, "checks": checks})
}
