package inventory_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/inventory"
)

func fakeProduct(qty decimal.Decimal) entity.Product {
	return entity.Product{
		ID:           int64(gofakeit.Number(1, 100000)),
		Name:         gofakeit.ProductName(),
		DefaultCode:  gofakeit.LetterN(6),
		ListPrice:    decimal.NewFromFloat(gofakeit.Price(1, 500)),
		QtyAvailable: qty,
		Active:       true,
		Type:         "product",
	}
}

func TestSummarize_ProductosConStock(t *testing.T) {
	products := []entity.Product{
		fakeProduct(decimal.NewFromInt(5)),
		fakeProduct(decimal.Zero),
		fakeProduct(decimal.NewFromFloat(-2)),
		fakeProduct(decimal.NewFromFloat(0.5)),
		{Name: "sin cantidad"}, // campo ausente = 0
	}

	s := inventory.Summarize(products, nil)

	assert.Equal(t, 5, s.TotalProducts)
	assert.Equal(t, 2, s.ProductsWithStock)
	assert.Equal(t, 0, s.TotalStockLocations)
	assert.NotNil(t, s.StockQuants)
}

func TestSummarize_UbicacionesDistintasPorID(t *testing.T) {
	quants := []entity.StockQuant{
		{LocationID: &entity.Many2One{ID: 8, Name: "WH/Stock"}},
		{LocationID: &entity.Many2One{ID: 8, Name: "otro nombre"}}, // el nombre no cuenta
		{LocationID: &entity.Many2One{ID: 12, Name: "WH/Shelf 1"}},
		{LocationID: nil}, // ausente = id 0
		{LocationID: &entity.Many2One{ID: 0, Name: ""}},
	}

	s := inventory.Summarize(nil, quants)

	assert.Equal(t, 3, s.TotalStockLocations)
	assert.Equal(t, 0, s.TotalProducts)
	assert.NotNil(t, s.Products)
}

func TestSummarize_Vacio(t *testing.T) {
	s := inventory.Summarize(nil, nil)

	assert.Equal(t, entity.InventorySummary{
		Products:    []entity.Product{},
		StockQuants: []entity.StockQuant{},
	}, s)
}

func TestValuation_SoloProductosConStock(t *testing.T) {
	products := []entity.Product{
		{QtyAvailable: decimal.NewFromInt(2), StandardPrice: decimal.NewFromInt(10), ListPrice: decimal.NewFromInt(15)},
		{QtyAvailable: decimal.NewFromInt(3), StandardPrice: decimal.NewFromInt(1), ListPrice: decimal.NewFromInt(2)},
		{QtyAvailable: decimal.NewFromInt(-4), StandardPrice: decimal.NewFromInt(100), ListPrice: decimal.NewFromInt(100)},
	}

	atCost, atList := inventory.Valuation(products)

	assert.True(t, atCost.Equal(decimal.NewFromInt(23)), atCost.String())
	assert.True(t, atList.Equal(decimal.NewFromInt(36)), atList.String())
}
