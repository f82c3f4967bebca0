package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un Querier atado a la tx y hace Commit o Rollback.
// Los repositorios construidos con ese Querier participan de la misma transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return persistErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return persistErr("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// MigrateTx aplica las migraciones en una sola transacción: o quedan todas o ninguna.
func (r *TxRunner) MigrateTx(ctx context.Context) error {
	return r.Run(ctx, func(q Querier) error {
		return Migrate(ctx, q)
	})
}
