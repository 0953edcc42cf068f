package repository

import "github.com/jhoicas/materiales-api/internal/domain/entity"

// WarehouseStockRepository puerto de persistencia para los registros de stock
// por bodega. Get* devuelven (nil, nil) cuando no existe registro para el par.
type WarehouseStockRepository interface {
	Create(s *entity.WarehouseStockRecord) error
	Get(materialID, warehouseID string) (*entity.WarehouseStockRecord, error)
	GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStockRecord, error)
	Update(s *entity.WarehouseStockRecord) error
	// Delete elimina el registro del par; devuelve ErrNotFound si no existía.
	Delete(materialID, warehouseID string) error
	// ListByMaterial escaneo transversal: todos los registros de stock de un
	// material sin importar la bodega (equivalente al collection-group scan).
	ListByMaterial(materialID string) ([]*entity.WarehouseStockRecord, error)
}
