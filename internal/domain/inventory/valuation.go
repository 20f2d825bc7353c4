package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// Valuation valor del stock disponible a costo (standard_price) y a precio de venta (list_price).
// Las cantidades negativas o cero no suman.
func Valuation(products []entity.Product) (atCost, atList decimal.Decimal) {
	atCost, atList = decimal.Zero, decimal.Zero
	for _, p := range products {
		if !p.HasStock() {
			continue
		}
		atCost = atCost.Add(p.QtyAvailable.Mul(p.StandardPrice))
		atList = atList.Add(p.QtyAvailable.Mul(p.ListPrice))
	}
	return atCost, atList
}
