package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-odoo/internal/application/dto"
)

// storeChecker contrato mínimo para saber si hay almacén de fotos.
// Lo implementa *inventory.SyncUseCase.
type storeChecker interface {
	StoreEnabled() bool
}

// RequireStore corta con 503 las rutas de fotos cuando no hay PostgreSQL configurado.
func RequireStore(checker storeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !checker.StoreEnabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STORE_DISABLED",
				Message: "el almacén de fotos no está configurado (DATABASE_URL / DB_HOST)",
			})
		}
		return c.Next()
	}
}
