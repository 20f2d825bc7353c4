package repository

import (
	"context"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// SnapshotRepository define el puerto para persistir fotos del inventario remoto.
type SnapshotRepository interface {
	// Save guarda cabecera y líneas en una sola transacción.
	Save(ctx context.Context, s *entity.Snapshot) error
	// Latest devuelve la foto más reciente de la base indicada o domain.ErrNotFound.
	Latest(ctx context.Context, database string) (*entity.Snapshot, error)
}
