package entity

import "time"

// InventorySummary agregado calculado en cada petición; no se cachea.
type InventorySummary struct {
	TotalProducts       int          `json:"total_products"`
	ProductsWithStock   int          `json:"products_with_stock"`
	TotalStockLocations int          `json:"total_stock_locations"`
	Products            []Product    `json:"products"`
	StockQuants         []StockQuant `json:"stock_quants"`
}

// Snapshot resumen persistido junto con el origen y la fecha de captura.
type Snapshot struct {
	ID        string           `json:"id"`
	BaseURL   string           `json:"base_url"`
	Database  string           `json:"database"`
	FetchedAt time.Time        `json:"fetched_at"`
	Summary   InventorySummary `json:"summary"`
}
