package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo histórico de consumo sobre PostgreSQL (solo lectura para el
// núcleo; Create existe para seeds y pruebas).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create persiste un evento de consumo.
func (r *ConsumptionRepo) Create(ev *entity.ConsumptionEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_events (id, material_id, warehouse_id, type, quantity, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.MaterialID, ev.WarehouseID, ev.Type, ev.Quantity, ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create consumption event: %w", err)
	}
	return nil
}

// ListByMaterial eventos de un material desde `since`; warehouseID vacío
// considera todas las bodegas.
func (r *ConsumptionRepo) ListByMaterial(materialID, warehouseID string, since time.Time) ([]*entity.ConsumptionEvent, error) {
	query := `
		SELECT id, material_id, warehouse_id, type, quantity, occurred_at
		FROM consumption_events
		WHERE material_id = $1 AND occurred_at >= $2
		  AND ($3 = '' OR warehouse_id = $3)
		ORDER BY occurred_at`
	rows, err := r.q.Query(context.Background(), query, materialID, since, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list consumption events: %w", err)
	}
	defer rows.Close()

	var out []*entity.ConsumptionEvent
	for rows.Next() {
		var ev entity.ConsumptionEvent
		if err := rows.Scan(&ev.ID, &ev.MaterialID, &ev.WarehouseID, &ev.Type, &ev.Quantity, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan consumption event: %w", err)
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}
