package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-odoo/internal/infrastructure/report"
	"github.com/jhoicas/inventario-odoo/pkg/config"
	"github.com/jhoicas/inventario-odoo/pkg/logger"
)

const (
	xmlUID   = `<?xml version="1.0"?><methodResponse><params><param><value><int>7</int></value></param></params></methodResponse>`
	xmlFalse = `<?xml version="1.0"?><methodResponse><params><param><value><boolean>0</boolean></value></param></params></methodResponse>`
	xmlEmpty = `<?xml version="1.0"?><methodResponse><params><param><value><array><data></data></array></value></param></params></methodResponse>`
)

// odooStub responde authenticate con authResp y cualquier execute_kw con una lista vacía.
func odooStub(t *testing.T, authResp string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/xml")
		if strings.Contains(string(body), "<methodName>authenticate</methodName>") {
			_, _ = io.WriteString(w, authResp)
			return
		}
		_, _ = io.WriteString(w, xmlEmpty)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url, dir string) *config.Config {
	return &config.Config{
		Odoo: config.OdooConfig{
			URL: url, APIKey: "k", Database: "main", TimeoutSeconds: 5,
		},
		Report: config.ReportConfig{
			JSONPath: filepath.Join(dir, report.DefaultJSONPath),
		},
	}
}

func TestRun_Exito(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(odooStub(t, xmlUID).URL, dir)
	cfg.Report.PDFPath = filepath.Join(dir, "inventario.pdf")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, cfg, logger.Nop()))

	assert.Contains(t, out.String(), "🚀 Starting Odoo Inventory Fetch...\n")
	assert.Contains(t, out.String(), "🔄 Using database: main\n")
	assert.Contains(t, out.String(), "Total Products: 0\n")
	assert.Contains(t, out.String(), "💾 Inventory data saved to '"+cfg.Report.JSONPath+"'")

	summary, err := report.ReadJSON(cfg.Report.JSONPath)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalProducts)
	assert.Empty(t, summary.Products)

	pdf, err := os.ReadFile(cfg.Report.PDFPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRun_FalloDeAutenticacion(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(odooStub(t, xmlFalse).URL, dir)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, cfg, logger.Nop()), "no es un error de proceso")

	assert.Contains(t, out.String(), "❌ Failed to authenticate with Odoo")
	assert.NotContains(t, out.String(), "ODOO INVENTORY REPORT")
	_, err := os.Stat(cfg.Report.JSONPath)
	assert.True(t, os.IsNotExist(err), "no debe escribirse el artefacto")
}
