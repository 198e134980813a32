package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/erp-lite/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status y latencia.
// Se monta antes del router; los errores ya vienen convertidos en respuesta.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		ev := log.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
