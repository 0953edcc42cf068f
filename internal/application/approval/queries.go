package approval

import (
	"context"

	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// Get devuelve el registro maestro por ID.
func (w *Workflow) Get(ctx context.Context, id string) (*entity.MaterialMasterRecord, error) {
	m, err := w.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// Detail devuelve el maestro junto con sus registros de stock por bodega.
func (w *Workflow) Detail(ctx context.Context, id string) (*entity.MaterialMasterRecord, []*entity.WarehouseStockRecord, error) {
	m, err := w.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stocks, err := w.stockRepo.ListByMaterial(m.ID)
	if err != nil {
		return nil, nil, err
	}
	return m, stocks, nil
}

// List devuelve la página de materiales por estado (más recientes primero)
// junto con el total del estado para los metadatos de paginación.
func (w *Workflow) List(ctx context.Context, status string, limit, offset int) ([]*entity.MaterialMasterRecord, int, error) {
	items, err := w.materialRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := w.materialRepo.CountByStatus(status)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Stocks devuelve los registros de stock de un material en todas las bodegas.
func (w *Workflow) Stocks(ctx context.Context, materialID string) ([]*entity.WarehouseStockRecord, error) {
	m, err := w.Get(ctx, materialID)
	if err != nil {
		return nil, err
	}
	return w.stockRepo.ListByMaterial(m.ID)
}
