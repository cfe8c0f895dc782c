package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/postgres/generated"
	"github.com/iho/finlab/internal/report"
	"github.com/iho/finlab/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

func (r *TransactionRepository) inTx(tx usecase.Tx) (*generated.Queries, error) {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}
	return r.queries.WithTx(pgxTx), nil
}

// Create inserts t inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	return q.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Amount:      decimalToNumeric(t.Amount),
		OccurredAt:  timeToPgTimestamptz(t.OccurredAt),
		CreatedAt:   timeToPgTimestamptz(t.CreatedAt),
	})
}

// LockUser takes a row lock on the user until tx ends.
func (r *TransactionRepository) LockUser(ctx context.Context, tx usecase.Tx, userID string) error {
	q, err := r.inTx(tx)
	if err != nil {
		return err
	}

	if _, err := q.LockUser(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("lock user: %w", err)
	}

	return nil
}

// HasDuplicateSince reports whether the same user created an identical
// transaction (type, category, amount) at or after since.
func (r *TransactionRepository) HasDuplicateSince(ctx context.Context, tx usecase.Tx, t *domain.Transaction, since time.Time) (bool, error) {
	q, err := r.inTx(tx)
	if err != nil {
		return false, err
	}

	return q.HasDuplicateTransaction(ctx, generated.HasDuplicateTransactionParams{
		UserID:    t.UserID,
		Type:      string(t.Type),
		Category:  t.Category,
		Amount:    decimalToNumeric(t.Amount),
		CreatedAt: timeToPgTimestamptz(since),
	})
}

// ListByUser returns the user's transactions inside rng, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, rng report.Range) ([]domain.Transaction, error) {
	var (
		rows []generated.Transaction
		err  error
	)

	if rng.Bounded {
		rows, err = r.queries.ListTransactionsByUserBetween(ctx, generated.ListTransactionsByUserBetweenParams{
			UserID: userID,
			Start:  timeToPgTimestamptz(rng.Start),
			End:    timeToPgTimestamptz(rng.End),
		})
	} else {
		rows, err = r.queries.ListTransactionsByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, rowToTransaction(row))
	}

	return txs, nil
}
