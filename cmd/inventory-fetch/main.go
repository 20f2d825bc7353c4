// Command inventory-fetch autentica contra Odoo, imprime el reporte de inventario
// y guarda el resumen en JSON (y en PDF si REPORT_PDF_PATH está definido).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-odoo/internal/application/inventory"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/odoo"
	"github.com/jhoicas/inventario-odoo/internal/infrastructure/report"
	"github.com/jhoicas/inventario-odoo/pkg/config"
	"github.com/jhoicas/inventario-odoo/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, cfg, log); err != nil {
		log.Error().Err(err).Msg("inventory-fetch")
		os.Exit(1)
	}
}

// run ejecuta el flujo completo. Un fallo de autenticación no es error: se informa y termina.
func run(ctx context.Context, out io.Writer, cfg *config.Config, log *logger.Logger) error {
	fmt.Fprintln(out, "🚀 Starting Odoo Inventory Fetch...")
	fmt.Fprintf(out, "\n🔄 Using database: %s\n", cfg.Odoo.Database)

	client := odoo.NewInventoryClient(cfg.Odoo.URL, cfg.Odoo.APIKey, cfg.Odoo.Database,
		odoo.WithTimeout(time.Duration(cfg.Odoo.TimeoutSeconds)*time.Second),
		odoo.WithLogger(log),
	)

	if !client.Authenticate(ctx) {
		fmt.Fprintln(out, "❌ Failed to authenticate with Odoo")
		return nil
	}

	summary := client.InventorySummary(ctx)
	if err := report.WriteText(out, summary); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}

	if err := report.WriteJSON(cfg.Report.JSONPath, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n💾 Inventory data saved to '%s'\n", cfg.Report.JSONPath)

	if cfg.Report.PDFPath != "" {
		pdf, err := report.NewMarotoPDFGenerator().GenerateInventoryPDF(ctx, summary, inventory.ReportMeta{
			Instance:    client.BaseURL(),
			Database:    client.Database(),
			GeneratedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Report.PDFPath, pdf, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", cfg.Report.PDFPath, err)
		}
		fmt.Fprintf(out, "📄 PDF report saved to '%s'\n", cfg.Report.PDFPath)
	}
	return nil
}
