package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Los montos y cantidades viajan como números JSON, igual que los entrega Odoo.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product snapshot de solo lectura de un registro product.product de Odoo.
// Los campos char vacíos (false en Odoo) quedan como cadena vacía.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	DefaultCode      string          `json:"default_code"`
	Barcode          string          `json:"barcode"`
	ListPrice        decimal.Decimal `json:"list_price"`     // precio de venta
	StandardPrice    decimal.Decimal `json:"standard_price"` // costo
	QtyAvailable     decimal.Decimal `json:"qty_available"`
	VirtualAvailable decimal.Decimal `json:"virtual_available"` // pronóstico
	CategID          *Many2One       `json:"categ_id"`
	UomID            *Many2One       `json:"uom_id"`
	Active           bool            `json:"active"`
	Type             string          `json:"type"`
}

// HasStock indica si la cantidad disponible es estrictamente positiva.
func (p Product) HasStock() bool {
	return p.QtyAvailable.IsPositive()
}

// UnmarshalJSON deja en nil las referencias que Odoo envía como false.
func (p *Product) UnmarshalJSON(data []byte) error {
	type Alias Product
	aux := struct {
		*Alias
		CategID json.RawMessage `json:"categ_id"`
		UomID   json.RawMessage `json:"uom_id"`
	}{Alias: (*Alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if p.CategID, err = decodeRef(aux.CategID); err != nil {
		return fmt.Errorf("product categ_id: %w", err)
	}
	if p.UomID, err = decodeRef(aux.UomID); err != nil {
		return fmt.Errorf("product uom_id: %w", err)
	}
	return nil
}
