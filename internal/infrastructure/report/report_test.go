package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/inventory"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/report"
)

func sampleSummary(n int) entity.InventorySummary {
	products := make([]entity.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, entity.Product{
			ID:           int64(i),
			Name:         fmt.Sprintf("Producto %d", i),
			DefaultCode:  fmt.Sprintf("P%03d", i),
			ListPrice:    decimal.RequireFromString("19.5"),
			QtyAvailable: decimal.NewFromInt(int64(i)),
			CategID:      &entity.Many2One{ID: 1, Name: "All"},
			Active:       true,
			Type:         "product",
		})
	}
	quants := []entity.StockQuant{
		{ID: 1, ProductID: &entity.Many2One{ID: 1, Name: "Producto 1"}, LocationID: &entity.Many2One{ID: 8, Name: "WH/Stock"}, Quantity: decimal.NewFromInt(3)},
	}
	return inventory.Summarize(products, quants)
}

func TestWriteText_CabeceraYTotales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleSummary(3)))

	out := buf.String()
	assert.Contains(t, out, "📦 ODOO INVENTORY REPORT")
	assert.Contains(t, out, "Total Products: 3\n")
	assert.Contains(t, out, "Products with Stock: 3\n")
	assert.Contains(t, out, "Stock Locations: 1\n")
	assert.Contains(t, out, "📋 PRODUCT DETAILS:")
	assert.Contains(t, out, strings.Repeat("=", 60))
	assert.NotContains(t, out, "more products")
}

func TestWriteText_LimitaADiezProductos(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleSummary(13)))

	out := buf.String()
	assert.Equal(t, 10, strings.Count(out, "• "))
	assert.Contains(t, out, "... and 3 more products\n")
	assert.NotContains(t, out, "Producto 11")
}

func TestWriteText_FilaDeAnchoFijo(t *testing.T) {
	s := inventory.Summarize([]entity.Product{{
		Name:         "Cable eléctrico de cobre calibre 12 AWG rollo 100m",
		DefaultCode:  "CABLE-COBRE-12",
		QtyAvailable: decimal.NewFromInt(7),
		ListPrice:    decimal.RequireFromString("3.456"),
	}, {
		Name: "Sin código",
	}}, nil)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "• Cable eléctrico de cobre calib | Code: CABLE-COBR | Qty: 7        | Price: $3.46\n")
	assert.Contains(t, out, "• Sin código                     | Code: N/A        | Qty: 0        | Price: $0.00\n")
}

func TestJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), report.DefaultJSONPath)
	written := sampleSummary(4)
	written.Products[1].CategID = nil
	written.Products[2].Barcode = "7701234567890"

	require.NoError(t, report.WriteJSON(path, written))
	readBack, err := report.ReadJSON(path)
	require.NoError(t, err)

	want, err := json.Marshal(written)
	require.NoError(t, err)
	got, err := json.Marshal(readBack)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, written.TotalProducts, readBack.TotalProducts)
	assert.Nil(t, readBack.Products[1].CategID)
	assert.Equal(t, &entity.Many2One{ID: 1, Name: "All"}, readBack.Products[0].CategID)
}

func TestJSON_ManyToOneComoPar(t *testing.T) {
	data, err := json.Marshal(entity.StockQuant{LocationID: &entity.Many2One{ID: 8, Name: "WH/Stock"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"location_id":[8,"WH/Stock"]`)
	assert.Contains(t, string(data), `"product_id":null`)
}

func TestReadJSON_ArchivoInexistente(t *testing.T) {
	_, err := report.ReadJSON(filepath.Join(t.TempDir(), "no-existe.json"))
	assert.Error(t, err)
}

func TestGenerateInventoryPDF(t *testing.T) {
	gen := report.NewMarotoPDFGenerator()
	pdf, err := gen.GenerateInventoryPDF(context.Background(), sampleSummary(25), appinventory.ReportMeta{
		Instance:    "https://acme.odoo.com",
		Database:    "main",
		GeneratedAt: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "debe ser un documento PDF")
}
