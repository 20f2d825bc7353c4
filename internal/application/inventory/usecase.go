package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
	"github.com/jhoicas/inventario-odoo/internal/domain/repository"
	"github.com/jhoicas/inventario-odoo/pkg/logger"
)

// SyncUseCase expone el inventario remoto a la API HTTP.
// Toda llamada a la fuente pasa por mu: el cliente Odoo no es seguro para uso concurrente.
type SyncUseCase struct {
	mu        sync.Mutex
	source    InventorySource
	repo      repository.SnapshotRepository // nil = sin almacenamiento
	generator InventoryPDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewSyncUseCase construye el caso de uso. repo puede ser nil si no hay base de datos configurada.
func NewSyncUseCase(
	source InventorySource,
	repo repository.SnapshotRepository,
	generator InventoryPDFGenerator,
	log *logger.Logger,
) *SyncUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncUseCase{
		source:    source,
		repo:      repo,
		generator: generator,
		log:       log.Named("sync"),
		now:       time.Now,
	}
}

// StoreEnabled indica si hay repositorio de fotos.
func (uc *SyncUseCase) StoreEnabled() bool { return uc.repo != nil }

// Summary trae productos y quants con el límite por defecto y devuelve los totales.
func (uc *SyncUseCase) Summary(ctx context.Context) entity.InventorySummary {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.source.InventorySummary(ctx)
}

// Products trae hasta limit productos.
func (uc *SyncUseCase) Products(ctx context.Context, limit int) []entity.Product {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.source.FetchProducts(ctx, limit)
}

// StockQuants trae hasta limit quants con cantidad positiva.
func (uc *SyncUseCase) StockQuants(ctx context.Context, limit int) []entity.StockQuant {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.source.FetchStockQuants(ctx, limit)
}

// Snapshot calcula el resumen y lo persiste.
//
// Retorna:
//   - domain.ErrStoreDisabled     si no hay repositorio.
//   - domain.ErrNotAuthenticated  si no se pudo abrir sesión en Odoo (no se guarda nada).
func (uc *SyncUseCase) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	if uc.repo == nil {
		return nil, domain.ErrStoreDisabled
	}

	uc.mu.Lock()
	if !uc.source.EnsureAuthenticated(ctx) {
		uc.mu.Unlock()
		return nil, domain.ErrNotAuthenticated
	}
	snap := &entity.Snapshot{
		ID:        uuid.New().String(),
		BaseURL:   uc.source.BaseURL(),
		Database:  uc.source.Database(),
		FetchedAt: uc.now().UTC(),
		Summary:   uc.source.InventorySummary(ctx),
	}
	uc.mu.Unlock()

	if err := uc.repo.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("snapshot: guardar: %w", err)
	}
	uc.log.Info().
		Str("snapshot_id", snap.ID).
		Str("database", snap.Database).
		Int("products", snap.Summary.TotalProducts).
		Msg("foto de inventario guardada")
	return snap, nil
}

// Latest devuelve la foto más reciente de la base en uso.
func (uc *SyncUseCase) Latest(ctx context.Context) (*entity.Snapshot, error) {
	if uc.repo == nil {
		return nil, domain.ErrStoreDisabled
	}

	uc.mu.Lock()
	database := uc.source.Database()
	uc.mu.Unlock()

	snap, err := uc.repo.Latest(ctx, database)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("snapshot: obtener última: %w", err)
	}
	return snap, nil
}

// ReportPDF genera el PDF del resumen actual y sugiere un nombre de archivo.
func (uc *SyncUseCase) ReportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	uc.mu.Lock()
	summary := uc.source.InventorySummary(ctx)
	meta := ReportMeta{
		Instance:    uc.source.BaseURL(),
		Database:    uc.source.Database(),
		GeneratedAt: uc.now(),
	}
	uc.mu.Unlock()

	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, summary, meta)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("inventario-%s-%s.pdf", nonEmpty(meta.Database, "odoo"), meta.GeneratedAt.Format("20060102-1504"))
	return pdfBytes, filename, nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
