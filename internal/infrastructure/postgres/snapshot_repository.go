package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

//go:embed migrations/001_inventory_snapshots.sql
var snapshotSchema string

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL.
// La cabecera guarda el resumen completo en JSONB; las líneas replican los productos
// con columnas NUMERIC para consultas directas.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSnapshotRepository construye el adaptador.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea tablas e índices si no existen. Es idempotente.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("postgres: migrar esquema de snapshots: %w", err)
	}
	return nil
}

// Save persiste cabecera y líneas en una sola transacción.
func (r *SnapshotRepo) Save(ctx context.Context, s *entity.Snapshot) error {
	payload, err := json.Marshal(s.Summary)
	if err != nil {
		return fmt.Errorf("postgres: serializar resumen: %w", err)
	}

	return r.tx.Run(ctx, func(q Querier) error {
		query := `
			INSERT INTO inventory_snapshots
			    (id, base_url, database_name, fetched_at, total_products, products_with_stock, total_stock_locations, payload)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := q.Exec(ctx, query,
			s.ID, s.BaseURL, s.Database, s.FetchedAt,
			s.Summary.TotalProducts, s.Summary.ProductsWithStock, s.Summary.TotalStockLocations,
			payload,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("snapshot %s ya existe: %w", s.ID, err)
			}
			return fmt.Errorf("insert snapshot: %w", err)
		}

		lines := snapshotLines(s.Summary.Products)
		if len(lines) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, l := range lines {
			batch.Queue(`
				INSERT INTO inventory_snapshot_lines
				    (snapshot_id, product_id, name, default_code, qty_available, virtual_available, list_price, standard_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				s.ID, l.productID, l.name, nullIfEmpty(l.defaultCode),
				l.qtyAvailable, l.virtualAvailable, l.listPrice, l.standardPrice,
			)
		}
		br := q.SendBatch(ctx, batch)
		defer br.Close()
		for range lines {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("insert snapshot line: %w", err)
			}
		}
		return br.Close()
	})
}

// Latest devuelve la foto más reciente de database o domain.ErrNotFound.
func (r *SnapshotRepo) Latest(ctx context.Context, database string) (*entity.Snapshot, error) {
	query := `
		SELECT id, base_url, database_name, fetched_at, payload
		FROM inventory_snapshots
		WHERE database_name = $1
		ORDER BY fetched_at DESC
		LIMIT 1`
	var s entity.Snapshot
	var payload []byte
	err := r.pool.QueryRow(ctx, query, database).Scan(&s.ID, &s.BaseURL, &s.Database, &s.FetchedAt, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &s.Summary); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}
	s.FetchedAt = s.FetchedAt.UTC()
	return &s, nil
}

type snapshotLine struct {
	productID        int64
	name             string
	defaultCode      string
	qtyAvailable     decimal.Decimal
	virtualAvailable decimal.Decimal
	listPrice        decimal.Decimal
	standardPrice    decimal.Decimal
}

// snapshotLines una línea por producto; ids repetidos se guardan una vez (gana el primero).
func snapshotLines(products []entity.Product) []snapshotLine {
	seen := make(map[int64]struct{}, len(products))
	out := make([]snapshotLine, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, snapshotLine{
			productID:        p.ID,
			name:             p.Name,
			defaultCode:      p.DefaultCode,
			qtyAvailable:     p.QtyAvailable,
			virtualAvailable: p.VirtualAvailable,
			listPrice:        p.ListPrice,
			standardPrice:    p.StandardPrice,
		})
	}
	return out
}
