// Package report genera las salidas del resumen de inventario: texto, JSON y PDF.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

const (
	// MaxListedProducts productos que se muestran en el reporte de texto.
	MaxListedProducts = 10

	nameWidth = 30
	codeWidth = 10
	ruleWidth = 60
)

// WriteText escribe el reporte legible: cabecera, los tres totales y hasta
// MaxListedProducts filas de producto de ancho fijo.
func WriteText(w io.Writer, s entity.InventorySummary) error {
	var b strings.Builder

	b.WriteString("\n" + strings.Repeat("=", ruleWidth) + "\n")
	b.WriteString("📦 ODOO INVENTORY REPORT\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	fmt.Fprintf(&b, "Total Products: %d\n", s.TotalProducts)
	fmt.Fprintf(&b, "Products with Stock: %d\n", s.ProductsWithStock)
	fmt.Fprintf(&b, "Stock Locations: %d\n", s.TotalStockLocations)

	b.WriteString("\n📋 PRODUCT DETAILS:\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	for i, p := range s.Products {
		if i == MaxListedProducts {
			break
		}
		b.WriteString(productLine(p) + "\n")
	}
	if rest := len(s.Products) - MaxListedProducts; rest > 0 {
		fmt.Fprintf(&b, "... and %d more products\n", rest)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func productLine(p entity.Product) string {
	name := p.Name
	if name == "" {
		name = "Unknown"
	}
	code := p.DefaultCode
	if code == "" {
		code = "N/A"
	}
	return fmt.Sprintf("• %-*s | Code: %-*s | Qty: %-8s | Price: $%s",
		nameWidth, truncate(name, nameWidth),
		codeWidth, truncate(code, codeWidth),
		p.QtyAvailable.String(),
		p.ListPrice.StringFixed(2),
	)
}

// truncate corta por runas, no por bytes, para no partir caracteres acentuados.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
