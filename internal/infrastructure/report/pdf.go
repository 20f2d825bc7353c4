package report

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: instancia + base de datos  │  fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos | con stock | ubicaciones | valorización │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Código | Cant. | Pronóst. | Precio        │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinventory "github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/inventory"
)

var _ appinventory.InventoryPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa appinventory.InventoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryPDF genera el PDF con todos los productos del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryPDF(
	_ context.Context,
	summary entity.InventorySummary,
	meta appinventory.ReportMeta,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Odoo Inventory Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableProductRows(summary.Products)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: instancia y base (izq), fecha (der).
func headerRow(meta appinventory.ReportMeta) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("ODOO INVENTORY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s  |  base: %s", meta.Instance, nonEmpty(meta.Database, "-")), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// totalsRow: los tres totales del resumen y la valorización del stock disponible.
func totalsRow(s entity.InventorySummary) core.Row {
	atCost, atList := inventory.Valuation(s.Products)
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Productos", fmt.Sprintf("%d", s.TotalProducts)),
		cell("Con stock", fmt.Sprintf("%d", s.ProductsWithStock)),
		cell("Ubicaciones", fmt.Sprintf("%d", s.TotalStockLocations)),
		cell("Valor costo / venta", "$"+atCost.StringFixed(2)+" / $"+atList.StringFixed(2)),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Código", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Pronóst.", 2, align.Right),
		h("Precio", 2, align.Right),
	)
}

// tableProductRows: una fila por producto.
func tableProductRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(nonEmpty(p.Name, "Unknown"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.DefaultCode, "N/A"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(p.QtyAvailable.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(p.VirtualAvailable.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+p.ListPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
