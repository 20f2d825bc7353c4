package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// SummaryResponse resumen del inventario con su valorización (solo productos con stock).
type SummaryResponse struct {
	entity.InventorySummary
	ValueAtCost decimal.Decimal `json:"value_at_cost"`
	ValueAtList decimal.Decimal `json:"value_at_list"`
}

// ProductListResponse respuesta de GET /api/inventory/products.
type ProductListResponse struct {
	Limit int              `json:"limit"`
	Count int              `json:"count"`
	Items []entity.Product `json:"items"`
}

// StockQuantListResponse respuesta de GET /api/inventory/stock-quants.
type StockQuantListResponse struct {
	Limit int                 `json:"limit"`
	Count int                 `json:"count"`
	Items []entity.StockQuant `json:"items"`
}
