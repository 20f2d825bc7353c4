package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-odoo/pkg/metrics"
)

// MetricsMiddleware registra método, patrón de ruta, estado y latencia de cada petición.
func MetricsMiddleware(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.Observe(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
