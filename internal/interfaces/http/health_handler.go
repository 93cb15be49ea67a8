package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia con chequeo de salud (pool de Postgres, cliente Redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler estado del servicio y sus dependencias.
type HealthHandler struct {
	checks map[string]Pinger
	stats  func() interface{}
}

// NewHealthHandler checks: nombre -> dependencia. stats opcional (p. ej. contadores del caché).
func NewHealthHandler(checks map[string]Pinger, stats func() interface{}) *HealthHandler {
	return &HealthHandler{checks: checks, stats: stats}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	body := fiber.Map{"status": "ok", "dependencias": deps}
	if status != fiber.StatusOK {
		body["status"] = "degradado"
	}
	if h.stats != nil {
		body["cache"] = h.stats()
	}
	return c.Status(status).JSON(body)
}
