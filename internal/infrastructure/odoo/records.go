package odoo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// Conversión de registros XML-RPC (map[string]any) a entidades.
// Odoo envía false para campos vacíos; los helpers lo tratan como valor cero.

func toRecords(res any) ([]map[string]any, error) {
	items, ok := res.([]any)
	if !ok {
		return nil, fmt.Errorf("odoo: read: se esperaba lista, llegó %T", res)
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rec, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("odoo: read: registro inesperado %T", it)
		}
		out = append(out, rec)
	}
	return out, nil
}

func toIDs(res any) ([]int64, error) {
	items, ok := res.([]any)
	if !ok {
		return nil, fmt.Errorf("odoo: search: se esperaba lista, llegó %T", res)
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		id, ok := it.(int64)
		if !ok {
			return nil, fmt.Errorf("odoo: search: id inesperado %T", it)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func productFromRecord(r map[string]any) entity.Product {
	return entity.Product{
		ID:               asInt64(r["id"]),
		Name:             asString(r["name"]),
		DefaultCode:      asString(r["default_code"]),
		Barcode:          asString(r["barcode"]),
		ListPrice:        asDecimal(r["list_price"]),
		StandardPrice:    asDecimal(r["standard_price"]),
		QtyAvailable:     asDecimal(r["qty_available"]),
		VirtualAvailable: asDecimal(r["virtual_available"]),
		CategID:          asMany2One(r["categ_id"]),
		UomID:            asMany2One(r["uom_id"]),
		Active:           asBool(r["active"]),
		Type:             asString(r["type"]),
	}
}

func stockQuantFromRecord(r map[string]any) entity.StockQuant {
	return entity.StockQuant{
		ID:                asInt64(r["id"]),
		ProductID:         asMany2One(r["product_id"]),
		LocationID:        asMany2One(r["location_id"]),
		Quantity:          asDecimal(r["quantity"]),
		ReservedQuantity:  asDecimal(r["reserved_quantity"]),
		AvailableQuantity: asDecimal(r["available_quantity"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	}
	return 0
}

func asDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int64:
		return decimal.NewFromInt(x)
	case string:
		if d, err := decimal.NewFromString(x); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func asMany2One(v any) *entity.Many2One {
	pair, ok := v.([]any)
	if !ok || len(pair) < 2 {
		return nil
	}
	return &entity.Many2One{ID: asInt64(pair[0]), Name: asString(pair[1])}
}
