package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zonekids/zonekids-api/pkg/logger"
)

// HeaderRequestID correlaciona la petición con sus líneas de log. Si el cliente no lo envía se genera.
const HeaderRequestID = "X-Request-ID"

// RequestLogger registra método, ruta, status y latencia de cada petición.
// El logger con el request_id queda en c.UserContext(); writeError lo usa para los 500.
func RequestLogger(log *logger.Logger) fiber.Handler {
	base := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		l := base.ForRequest(id)
		c.SetUserContext(logger.WithContext(c.UserContext(), l))

		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler todavía no escribió el status
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
