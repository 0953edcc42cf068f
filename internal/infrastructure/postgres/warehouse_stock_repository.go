package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

var _ repository.WarehouseStockRepository = (*WarehouseStockRepo)(nil)

// WarehouseStockRepo implementación de WarehouseStockRepository sobre
// PostgreSQL (usable con pool o tx). Clave primaria compuesta
// (material_id, warehouse_id): el invariante de un registro por par lo
// protege la propia tabla.
type WarehouseStockRepo struct {
	q Querier
}

// NewWarehouseStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseStockRepository(q Querier) *WarehouseStockRepo {
	return &WarehouseStockRepo{q: q}
}

const stockColumns = `
	material_id, material_code, warehouse_id, warehouse_name, section_id,
	issuable_qty, reserved_qty, min_stock_level, max_stock_level,
	reorder_point_qty, safety_stock_qty, criticality_score, criticality_class,
	cost_class, service_level_target_pct, standard_price,
	purchasing_processing_days, planned_delivery_days, goods_receipt_processing_days,
	created_at, updated_at`

// Create inserta el registro de stock. Par duplicado → ErrDataIntegrity
// (el invariante se violó por fuera de la materialización).
func (r *WarehouseStockRepo) Create(s *entity.WarehouseStockRecord) error {
	query := `
		INSERT INTO warehouse_stocks (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		s.MaterialID, s.MaterialCode, s.WarehouseID, s.WarehouseName, s.SectionID,
		s.Inventory.IssuableQty, s.Inventory.ReservedQty, s.Inventory.MinStockLevel, s.Inventory.MaxStockLevel,
		s.Inventory.ReorderPointQty, s.Inventory.SafetyStockQty, s.Inventory.CriticalityScore, nullIfEmpty(s.Inventory.CriticalityClass),
		s.Inventory.CostClass, s.Inventory.ServiceLevelTargetPct, s.Procurement.StandardPrice,
		s.Procurement.PurchasingProcessingDays, s.Procurement.PlannedDeliveryDays, s.Procurement.GoodsReceiptProcessingDays,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: stock duplicado para material %s en bodega %s", domain.ErrDataIntegrity, s.MaterialID, s.WarehouseID)
		}
		return fmt.Errorf("create warehouse stock: %w", err)
	}
	return nil
}

// Get obtiene el registro del par; (nil, nil) si no existe.
func (r *WarehouseStockRepo) Get(materialID, warehouseID string) (*entity.WarehouseStockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM warehouse_stocks WHERE material_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, warehouseID))
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT FOR UPDATE).
func (r *WarehouseStockRepo) GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM warehouse_stocks WHERE material_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, materialID, warehouseID))
}

// Update persiste los campos de política e inventario.
func (r *WarehouseStockRepo) Update(s *entity.WarehouseStockRecord) error {
	query := `
		UPDATE warehouse_stocks SET
			material_code = $3, warehouse_name = $4, section_id = $5,
			issuable_qty = $6, reserved_qty = $7, min_stock_level = $8, max_stock_level = $9,
			reorder_point_qty = $10, safety_stock_qty = $11, criticality_score = $12,
			criticality_class = $13, cost_class = $14, service_level_target_pct = $15,
			standard_price = $16, purchasing_processing_days = $17,
			planned_delivery_days = $18, goods_receipt_processing_days = $19, updated_at = $20
		WHERE material_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		s.MaterialID, s.WarehouseID, s.MaterialCode, s.WarehouseName, s.SectionID,
		s.Inventory.IssuableQty, s.Inventory.ReservedQty, s.Inventory.MinStockLevel, s.Inventory.MaxStockLevel,
		s.Inventory.ReorderPointQty, s.Inventory.SafetyStockQty, s.Inventory.CriticalityScore,
		nullIfEmpty(s.Inventory.CriticalityClass), s.Inventory.CostClass, s.Inventory.ServiceLevelTargetPct,
		s.Procurement.StandardPrice, s.Procurement.PurchasingProcessingDays,
		s.Procurement.PlannedDeliveryDays, s.Procurement.GoodsReceiptProcessingDays, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update warehouse stock %s/%s: sin filas afectadas", s.MaterialID, s.WarehouseID)
	}
	return nil
}

// Delete elimina el registro del par; ErrNotFound si no existía
// (la materialización de retiro lo distingue como falla de integridad).
func (r *WarehouseStockRepo) Delete(materialID, warehouseID string) error {
	query := `DELETE FROM warehouse_stocks WHERE material_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(context.Background(), query, materialID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete warehouse stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByMaterial todos los registros de stock de un material sin importar la
// bodega (equivalente al collection-group scan del almacén de documentos).
func (r *WarehouseStockRepo) ListByMaterial(materialID string) ([]*entity.WarehouseStockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM warehouse_stocks WHERE material_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse stocks: %w", err)
	}
	defer rows.Close()

	var out []*entity.WarehouseStockRecord
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *WarehouseStockRepo) scanOne(row pgx.Row) (*entity.WarehouseStockRecord, error) {
	s, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanStock(row pgx.Row) (*entity.WarehouseStockRecord, error) {
	var s entity.WarehouseStockRecord
	var class *string
	err := row.Scan(
		&s.MaterialID, &s.MaterialCode, &s.WarehouseID, &s.WarehouseName, &s.SectionID,
		&s.Inventory.IssuableQty, &s.Inventory.ReservedQty, &s.Inventory.MinStockLevel, &s.Inventory.MaxStockLevel,
		&s.Inventory.ReorderPointQty, &s.Inventory.SafetyStockQty, &s.Inventory.CriticalityScore, &class,
		&s.Inventory.CostClass, &s.Inventory.ServiceLevelTargetPct, &s.Procurement.StandardPrice,
		&s.Procurement.PurchasingProcessingDays, &s.Procurement.PlannedDeliveryDays, &s.Procurement.GoodsReceiptProcessingDays,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan warehouse stock: %w", err)
	}
	if class != nil {
		s.Inventory.CriticalityClass = *class
	}
	return &s, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
