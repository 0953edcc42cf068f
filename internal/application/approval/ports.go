package approval

import (
	"context"

	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén con
// semántica read-then-write optimista: toda lectura dentro de fn es fresca y
// la transacción completa se reintenta automáticamente (con relecturas) si
// otra transacción concurrente tocó lo leído. fn debe ser re-ejecutable con
// seguridad: función pura del estado recién leído, sin efectos fuera de la tx.
// Presupuesto de reintentos agotado → ErrTransientConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.WarehouseStockRepository,
		counterRepo repository.CounterRepository,
	) error) error
}
