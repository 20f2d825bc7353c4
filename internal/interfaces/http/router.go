package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory *inventory.SyncUseCase
	JWTSecret string
	AppName   string
	// Gatherer fuente de /metrics; nil = prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Públicas
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	invGroup := api.Group("/inventory", RequireRole(jwt.RoleAdmin, jwt.RoleViewer))
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	invGroup.Get("/summary", inventoryHandler.GetSummary)
	invGroup.Get("/products", inventoryHandler.ListProducts)
	invGroup.Get("/stock-quants", inventoryHandler.ListStockQuants)
	invGroup.Get("/report.pdf", inventoryHandler.DownloadReportPDF)

	// Fotos: lectura para ambos roles, escritura solo admin.
	snapshots := invGroup.Group("/snapshots", RequireStore(deps.Inventory))
	snapshots.Post("/", RequireRole(jwt.RoleAdmin), inventoryHandler.CreateSnapshot)
	snapshots.Get("/latest", inventoryHandler.GetLatestSnapshot)
}
