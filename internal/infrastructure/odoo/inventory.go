package odoo

import (
	"context"
	"io"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/inventory"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/report"
)

const (
	productModel    = "product.product"
	stockQuantModel = "stock.quant"
)

// productFilters estrategias de búsqueda en orden de prioridad; gana la primera con resultados.
var productFilters = [][]any{
	{}, // todos los productos
	{[]any{"sale_ok", "=", true}},
	{[]any{"type", "in", []any{"product", "consu"}}},
	{[]any{"active", "=", true}},
}

var productFields = []string{
	"name", "default_code", "barcode", "list_price",
	"standard_price", "qty_available", "virtual_available",
	"categ_id", "uom_id", "active", "type",
}

var stockQuantFilter = []any{[]any{"quantity", ">", 0}}

var stockQuantFields = []string{
	"product_id", "location_id", "quantity",
	"reserved_quantity", "available_quantity",
}

// ExecuteKw invoca object.execute_kw(db, uid, api_key, model, method, args, kwargs).
// Requiere sesión; devuelve domain.ErrNotAuthenticated si no la hay y *Fault si Odoo rechaza.
func (c *InventoryClient) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	if !c.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return c.xmlrpcCall(ctx, c.objectURL, "execute_kw",
		c.database, c.uid, c.apiKey, model, method, args, kwargs)
}

func (c *InventoryClient) search(ctx context.Context, model string, filter []any, limit int) ([]int64, error) {
	res, err := c.ExecuteKw(ctx, model, "search", []any{filter}, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	return toIDs(res)
}

func (c *InventoryClient) read(ctx context.Context, model string, ids []int64, fields []string) ([]map[string]any, error) {
	res, err := c.ExecuteKw(ctx, model, "read", []any{ids}, map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	return toRecords(res)
}

// FetchProducts trae hasta limit productos (DefaultLimit si limit <= 0).
// Prueba los filtros en orden y devuelve los registros del primero que encuentre algo;
// los siguientes no se consultan. Sin sesión, sin coincidencias o ante cualquier error
// devuelve una lista vacía: los fallos se registran, nunca se propagan.
func (c *InventoryClient) FetchProducts(ctx context.Context, limit int) []entity.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if !c.EnsureAuthenticated(ctx) {
		return []entity.Product{}
	}

	products, err := c.fetchProducts(ctx, limit)
	if err != nil {
		c.log.Error().Err(err).Msg("error trayendo productos")
		return []entity.Product{}
	}
	return products
}

func (c *InventoryClient) fetchProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	for i, filter := range productFilters {
		c.log.Debug().Int("filter", i+1).Interface("domain", filter).Msg("buscando productos")

		ids, err := c.search(ctx, productModel, filter, limit)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			c.log.Debug().Int("filter", i+1).Msg("sin productos con este filtro")
			continue
		}

		c.log.Info().Int("filter", i+1).Int("count", len(ids)).Msg("productos encontrados")
		records, err := c.read(ctx, productModel, ids, productFields)
		if err != nil {
			return nil, err
		}
		products := make([]entity.Product, 0, len(records))
		for _, r := range records {
			products = append(products, productFromRecord(r))
		}
		return products, nil
	}

	c.log.Info().Msg("ningún filtro devolvió productos")
	return []entity.Product{}, nil
}

// FetchStockQuants trae hasta limit quants con quantity > 0. Mismo contrato que FetchProducts:
// nunca propaga errores.
func (c *InventoryClient) FetchStockQuants(ctx context.Context, limit int) []entity.StockQuant {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if !c.EnsureAuthenticated(ctx) {
		return []entity.StockQuant{}
	}

	quants, err := c.fetchStockQuants(ctx, limit)
	if err != nil {
		c.log.Error().Err(err).Msg("error trayendo stock quants")
		return []entity.StockQuant{}
	}
	return quants
}

func (c *InventoryClient) fetchStockQuants(ctx context.Context, limit int) ([]entity.StockQuant, error) {
	ids, err := c.search(ctx, stockQuantModel, stockQuantFilter, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		c.log.Info().Msg("no hay cantidades en stock")
		return []entity.StockQuant{}, nil
	}

	records, err := c.read(ctx, stockQuantModel, ids, stockQuantFields)
	if err != nil {
		return nil, err
	}
	quants := make([]entity.StockQuant, 0, len(records))
	for _, r := range records {
		quants = append(quants, stockQuantFromRecord(r))
	}
	return quants, nil
}

// InventorySummary trae productos y quants con el límite por defecto y los agrega.
func (c *InventoryClient) InventorySummary(ctx context.Context) entity.InventorySummary {
	products := c.FetchProducts(ctx, DefaultLimit)
	quants := c.FetchStockQuants(ctx, DefaultLimit)
	return inventory.Summarize(products, quants)
}

// PrintInventoryReport calcula un resumen y escribe el reporte de texto en w.
func (c *InventoryClient) PrintInventoryReport(ctx context.Context, w io.Writer) error {
	return report.WriteText(w, c.InventorySummary(ctx))
}
