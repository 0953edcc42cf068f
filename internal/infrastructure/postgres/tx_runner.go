package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/materiales-api/internal/application/approval"
	"github.com/jhoicas/materiales-api/internal/application/policy"
	"github.com/jhoicas/materiales-api/internal/domain"
	"github.com/jhoicas/materiales-api/internal/domain/repository"
)

// Ensure TxRunner implements approval.TxRunner and policy.TxRunner.
var _ approval.TxRunner = (*TxRunner)(nil)
var _ policy.TxRunner = (*TxRunner)(nil)

// txMaxRetries reintentos ante colisión de serialización antes de rendirse
// y reportar ErrTransientConflict al caller.
const txMaxRetries = 3

// TxRunner ejecuta callbacks dentro de una transacción SERIALIZABLE con
// reintento automático en colisión (40001/40P01). Cada reintento re-ejecuta
// el callback completo sobre una transacción nueva: toda lectura es fresca,
// por eso los callbacks deben ser función pura del estado recién leído.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción de aprobación/materialización: maestro + stock + contador.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	stockRepo repository.WarehouseStockRepository,
	counterRepo repository.CounterRepository,
) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(
			NewMaterialRepository(tx),
			NewWarehouseStockRepository(tx),
			NewCounterRepository(tx),
		)
	})
}

// RunPolicy transacción de aplicación de política: stock + auditoría.
func (r *TxRunner) RunPolicy(ctx context.Context, fn func(
	stockRepo repository.WarehouseStockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	return r.withRetry(ctx, func(tx pgx.Tx) error {
		return fn(
			NewWarehouseStockRepository(tx),
			NewAuditRepository(tx),
		)
	})
}

func (r *TxRunner) withRetry(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt <= txMaxRetries; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	// Presupuesto agotado: el caller puede reenviar la misma operación.
	return fmt.Errorf("%w: %v", domain.ErrTransientConflict, err)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
