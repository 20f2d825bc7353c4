package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/inventory"
	"github.com/jhoicas/inventario-odoo/pkg/config"
)

func TestSnapshotLines_DescartaIDsRepetidos(t *testing.T) {
	lines := snapshotLines([]entity.Product{
		{ID: 1, Name: "Cable", QtyAvailable: decimal.NewFromInt(3)},
		{ID: 2, Name: "Breaker"},
		{ID: 1, Name: "Cable (duplicado)"},
	})

	require.Len(t, lines, 2)
	assert.Equal(t, "Cable", lines[0].name)
	assert.True(t, lines[0].qtyAvailable.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, int64(2), lines[1].productID)
}

func TestSnapshotLines_Vacio(t *testing.T) {
	assert.Empty(t, snapshotLines(nil))
}

func TestSnapshotSchema_Embebido(t *testing.T) {
	assert.Contains(t, snapshotSchema, "CREATE TABLE IF NOT EXISTS inventory_snapshots")
	assert.Contains(t, snapshotSchema, "inventory_snapshot_lines")
	assert.Equal(t, 2, strings.Count(snapshotSchema, "CREATE TABLE IF NOT EXISTS"))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("SKU-1"))
	assert.Equal(t, "SKU-1", *nullIfEmpty("SKU-1"))
}

// TestSnapshotRepo_Integracion requiere una base real: TEST_DATABASE_URL=postgres://...
func TestSnapshotRepo_Integracion(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewSnapshotRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "la migración debe ser idempotente")

	database := "test-" + uuid.New().String()
	_, err = repo.Latest(ctx, database)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	summary := inventory.Summarize([]entity.Product{
		{ID: 1, Name: "Cable", DefaultCode: "C-1", QtyAvailable: decimal.RequireFromString("2.5"), ListPrice: decimal.NewFromInt(10)},
		{ID: 2, Name: "Breaker"},
	}, []entity.StockQuant{
		{ID: 1, LocationID: &entity.Many2One{ID: 8, Name: "WH/Stock"}, Quantity: decimal.RequireFromString("2.5")},
	})

	older := &entity.Snapshot{ID: uuid.New().String(), BaseURL: "https://acme.odoo.com", Database: database,
		FetchedAt: time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond), Summary: summary}
	newer := &entity.Snapshot{ID: uuid.New().String(), BaseURL: "https://acme.odoo.com", Database: database,
		FetchedAt: time.Now().UTC().Truncate(time.Microsecond), Summary: summary}
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))
	assert.Error(t, repo.Save(ctx, newer), "id repetido")

	got, err := repo.Latest(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.True(t, newer.FetchedAt.Equal(got.FetchedAt))
	assert.Equal(t, 2, got.Summary.TotalProducts)
	assert.Equal(t, 1, got.Summary.TotalStockLocations)
	assert.Equal(t, "2.5", got.Summary.Products[0].QtyAvailable.String())

	var lines int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM inventory_snapshot_lines WHERE snapshot_id = $1`, newer.ID).Scan(&lines))
	assert.Equal(t, 2, lines)
}
