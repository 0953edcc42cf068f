package repository

import (
	"time"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
)

// ConsumptionRepository puerto de lectura del histórico de consumo.
// El núcleo nunca muta estos eventos; Create existe para seeds y pruebas.
type ConsumptionRepository interface {
	Create(ev *entity.ConsumptionEvent) error
	// ListByMaterial eventos desde `since`; warehouseID vacío = todas las bodegas.
	ListByMaterial(materialID, warehouseID string, since time.Time) ([]*entity.ConsumptionEvent, error)
}
