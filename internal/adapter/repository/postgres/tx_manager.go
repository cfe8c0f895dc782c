package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finlab/internal/usecase"
)

type pgxPool interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager opens READ COMMITTED transactions. When lockTimeout is set, row
// locks that cannot be taken in time fail with 55P03, which the Retrier
// retries.
type TxManager struct {
	pool        pgxPool
	lockTimeout time.Duration
}

func NewTxManager(pool *pgxpool.Pool, lockTimeout time.Duration) *TxManager {
	return newTxManagerWithPool(pool, lockTimeout)
}

func newTxManagerWithPool(pool pgxPool, lockTimeout time.Duration) *TxManager {
	return &TxManager{pool: pool, lockTimeout: lockTimeout}
}

func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	if m.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", m.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", timeout); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("set lock timeout: %w", err)
		}
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction. Rollback after Commit is a no-op.
type Tx struct {
	tx   pgx.Tx
	done bool
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return err
	}
	t.done = true
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback(ctx)
}

func unwrapTx(tx usecase.Tx) (pgx.Tx, error) {
	pt, ok := tx.(*Tx)
	if !ok || pt == nil {
		return nil, fmt.Errorf("postgres: unsupported transaction type %T", tx)
	}
	return pt.tx, nil
}
