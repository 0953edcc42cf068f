package approval

import (
	"fmt"
	"time"

	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// materialize ejecuta los efectos de la transición a Approved. Corre SIEMPRE
// dentro de la transacción de aprobación: emisión de código, escritura/borrado
// de stock y actualización del maestro se observan juntos o no se observan.
// Despacho por tipo de solicitud (unión etiquetada):
//
//	new_material → incrementa el contador del tipo, emite el código y crea el
//	               registro de stock en la bodega solicitada.
//	extension    → crea el registro de stock en la nueva bodega para el
//	               material existente; no emite código.
//	removal      → borra el registro de stock de la bodega indicada.
//
// Devuelve el código emitido (solo new_material).
func materialize(
	m *entity.MaterialMasterRecord,
	materialRepo repository.MaterialRepository,
	stockRepo repository.WarehouseStockRepository,
	counterRepo repository.CounterRepository,
	now time.Time,
) (string, error) {
	switch m.RequestType {
	case entity.RequestTypeNewMaterial:
		return materializeNew(m, stockRepo, counterRepo, now)
	case entity.RequestTypeExtension:
		return "", materializeExtension(m, materialRepo, stockRepo, now)
	case entity.RequestTypeRemoval:
		return "", materializeRemoval(m, materialRepo, stockRepo, now)
	default:
		return "", fmt.Errorf("%w: request_type desconocido %q en materialización", domain.ErrDataIntegrity, m.RequestType)
	}
}

func materializeNew(
	m *entity.MaterialMasterRecord,
	stockRepo repository.WarehouseStockRepository,
	counterRepo repository.CounterRepository,
	now time.Time,
) (string, error) {
	n, err := counterRepo.IncrementAndGet(m.MaterialTypeCode)
	if err != nil {
		return "", err
	}
	code := entity.FormatMaterialCode(m.MaterialTypeCode, n)
	m.MaterialCode = code

	if err := ensureNotExtended(stockRepo, m.ID, m.RequestedWarehouseID); err != nil {
		return "", err
	}
	if err := stockRepo.Create(buildStockRecord(m, m.ID, code, now)); err != nil {
		return "", err
	}
	m.WarehouseIDs = append(m.WarehouseIDs, m.RequestedWarehouseID)
	return code, nil
}

func materializeExtension(
	m *entity.MaterialMasterRecord,
	materialRepo repository.MaterialRepository,
	stockRepo repository.WarehouseStockRepository,
	now time.Time,
) error {
	target, err := materialRepo.GetForUpdate(m.TargetMaterialID)
	if err != nil {
		return err
	}
	if target == nil || target.MaterialCode == "" {
		// El maestro referenciado desapareció o perdió el código entre la
		// solicitud y la aprobación final.
		return fmt.Errorf("%w: material destino %s ausente en materialización", domain.ErrDataIntegrity, m.TargetMaterialID)
	}

	if target.HasWarehouse(m.RequestedWarehouseID) {
		return fmt.Errorf("%w: el material %s ya está extendido en bodega %s", domain.ErrDataIntegrity, target.ID, m.RequestedWarehouseID)
	}
	// El registro de stock es la autoridad; la lista desnormalizada pudo
	// quedarse atrás.
	if err := ensureNotExtended(stockRepo, target.ID, m.RequestedWarehouseID); err != nil {
		return err
	}
	if err := stockRepo.Create(buildStockRecord(m, target.ID, target.MaterialCode, now)); err != nil {
		return err
	}

	target.WarehouseIDs = append(target.WarehouseIDs, m.RequestedWarehouseID)
	target.UpdatedAt = now
	return materialRepo.Update(target)
}

func materializeRemoval(
	m *entity.MaterialMasterRecord,
	materialRepo repository.MaterialRepository,
	stockRepo repository.WarehouseStockRepository,
	now time.Time,
) error {
	target, err := materialRepo.GetForUpdate(m.TargetMaterialID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: material destino %s ausente en materialización", domain.ErrDataIntegrity, m.TargetMaterialID)
	}
	if !target.HasWarehouse(m.RequestedWarehouseID) {
		return fmt.Errorf("%w: el material %s no está extendido en bodega %s", domain.ErrDataIntegrity, target.ID, m.RequestedWarehouseID)
	}

	if err := stockRepo.Delete(target.ID, m.RequestedWarehouseID); err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("%w: no hay stock que retirar en bodega %s", domain.ErrDataIntegrity, m.RequestedWarehouseID)
		}
		return err
	}

	kept := target.WarehouseIDs[:0]
	for _, id := range target.WarehouseIDs {
		if id != m.RequestedWarehouseID {
			kept = append(kept, id)
		}
	}
	target.WarehouseIDs = kept
	target.UpdatedAt = now
	return materialRepo.Update(target)
}

// ensureNotExtended protege el invariante: a lo sumo un registro de stock por
// par (material, bodega).
func ensureNotExtended(stockRepo repository.WarehouseStockRepository, materialID, warehouseID string) error {
	existing, err := stockRepo.Get(materialID, warehouseID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: el material %s ya está extendido en bodega %s", domain.ErrDataIntegrity, materialID, warehouseID)
	}
	return nil
}

// buildStockRecord siembra el registro de stock desde los defaults de la
// solicitud aprobada.
func buildStockRecord(m *entity.MaterialMasterRecord, materialID, code string, now time.Time) *entity.WarehouseStockRecord {
	return &entity.WarehouseStockRecord{
		MaterialID:    materialID,
		MaterialCode:  code,
		WarehouseID:   m.RequestedWarehouseID,
		WarehouseName: m.RequestedWarehouseName,
		SectionID:     m.SectionID,
		Inventory:     m.InventoryDefaults,
		Procurement:   m.ProcurementDefaults,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
