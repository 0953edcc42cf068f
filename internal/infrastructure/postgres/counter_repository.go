package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo secuencias de códigos de material sobre PostgreSQL.
// Usar solo atado a la transacción de materialización: el UPDATE toma el
// bloqueo de fila y la serialización de la tx garantiza que dos
// materializaciones del mismo tipo nunca observen el mismo valor.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar la tx de materialización.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// IncrementAndGet incrementa el contador del tipo y devuelve el nuevo valor.
// Los contadores se aprovisionan por adelantado (cmd/seed); uno ausente o con
// valor corrupto es falla de integridad, fatal para la solicitud y sin
// reintento automático.
func (r *CounterRepo) IncrementAndGet(typeCode string) (int64, error) {
	query := `
		UPDATE material_counters
		SET last_value = last_value + 1, updated_at = now()
		WHERE type_code = $1
		RETURNING last_value`
	var n int64
	err := r.q.QueryRow(context.Background(), query, typeCode).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: contador no aprovisionado para el tipo %q", domain.ErrDataIntegrity, typeCode)
		}
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: contador del tipo %q con valor inválido %d", domain.ErrDataIntegrity, typeCode, n)
	}
	return n, nil
}
