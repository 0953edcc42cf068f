package policy

import (
	"context"

	"github.com/jhoicas/materiales-api/internal/domain/entity"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// TxRunner transacción para aplicar la política: actualización del registro
// de stock y entrada de auditoría en una sola unidad atómica.
type TxRunner interface {
	RunPolicy(ctx context.Context, fn func(
		stockRepo repository.WarehouseStockRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// SettingsProvider entrega la configuración de criticidad vigente.
// Lo satisface el repositorio Postgres directo o la caché Redis que lo
// antepone.
type SettingsProvider interface {
	Get(ctx context.Context) (*entity.CriticalitySettings, error)
}
