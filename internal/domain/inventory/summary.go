// Package inventory contiene la lógica pura de agregación del inventario traído de Odoo.
package inventory

import "github.com/jhoicas/inventario-odoo/internal/domain/entity"

// Summarize calcula el resumen de inventario a partir de productos y quants.
//   - ProductsWithStock: productos con qty_available > 0 (ausente = 0).
//   - TotalStockLocations: ids de ubicación distintos; una referencia ausente cuenta como id 0
//     y el display_name se ignora.
func Summarize(products []entity.Product, quants []entity.StockQuant) entity.InventorySummary {
	if products == nil {
		products = []entity.Product{}
	}
	if quants == nil {
		quants = []entity.StockQuant{}
	}

	withStock := 0
	for _, p := range products {
		if p.HasStock() {
			withStock++
		}
	}

	locations := make(map[int64]struct{}, len(quants))
	for _, q := range quants {
		locations[entity.RefID(q.LocationID)] = struct{}{}
	}

	return entity.InventorySummary{
		TotalProducts:       len(products),
		ProductsWithStock:   withStock,
		TotalStockLocations: len(locations),
		Products:            products,
		StockQuants:         quants,
	}
}
