package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// InventorySource fuente de inventario remota. La implementa *odoo.InventoryClient.
// Las implementaciones no necesitan ser seguras para uso concurrente: SyncUseCase serializa.
type InventorySource interface {
	BaseURL() string
	Database() string
	EnsureAuthenticated(ctx context.Context) bool
	FetchProducts(ctx context.Context, limit int) []entity.Product
	FetchStockQuants(ctx context.Context, limit int) []entity.StockQuant
	InventorySummary(ctx context.Context) entity.InventorySummary
}

// ReportMeta datos de cabecera para el reporte PDF.
type ReportMeta struct {
	Instance    string
	Database    string
	GeneratedAt time.Time
}

// InventoryPDFGenerator puerto de salida para la representación PDF del resumen.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, summary entity.InventorySummary, meta ReportMeta) ([]byte, error)
}
