package repository

import "github.com/jhoicas/materiales-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para el maestro de
// materiales (DIP). Get* devuelven (nil, nil) cuando el registro no existe.
type MaterialRepository interface {
	Create(m *entity.MaterialMasterRecord) error
	GetByID(id string) (*entity.MaterialMasterRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de la
	// transacción de aprobación para la relectura fresca de los slots.
	GetForUpdate(id string) (*entity.MaterialMasterRecord, error)
	Update(m *entity.MaterialMasterRecord) error
	ListByStatus(status string, limit, offset int) ([]*entity.MaterialMasterRecord, error)
	CountByStatus(status string) (int, error)
}
