package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

// TransactionUseCase handles transaction entry and listing.
type TransactionUseCase struct {
	txManager TxManager
	txRepo    TransactionRepository
	cache     ReportCache
	idGen     IDGenerator
	retrier   Retrier
	clock     Clock
	metrics   Metrics
	settings  ReportSettings
	logger    zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	txRepo TransactionRepository,
	cache ReportCache,
	idGen IDGenerator,
	retrier Retrier,
	clock Clock,
	metrics Metrics,
	settings ReportSettings,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager: txManager,
		txRepo:    txRepo,
		cache:     cache,
		idGen:     idGen,
		retrier:   retrier,
		clock:     clock,
		metrics:   metrics,
		settings:  settings.withDefaults(),
		logger:    logger.With().Str("component", "transactions").Logger(),
	}
}

// AddTransactionInput represents input for recording a transaction.
type AddTransactionInput struct {
	OccurredAt  *time.Time
	UserID      string
	Type        domain.TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Add validates and stores a transaction, rejecting an identical one
// recorded by the same user within domain.DuplicateWindow.
func (uc *TransactionUseCase) Add(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	now := uc.clock.Now().UTC()

	t := &domain.Transaction{
		UserID:      input.UserID,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
	}
	if input.OccurredAt != nil {
		t.OccurredAt = *input.OccurredAt
	}
	t.Normalize(now)

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(t.Description); err != nil {
		return nil, err
	}

	t.ID = uc.idGen.Generate()

	err := uc.retrier.Retry(ctx, func() error {
		return uc.insert(ctx, t, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			uc.metrics.DuplicateRejected()
		}
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, t.UserID); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", t.UserID).Msg("failed to invalidate report cache")
	}

	uc.metrics.TransactionCreated(t.Type, t.Amount)
	uc.logger.Debug().
		Str("user_id", t.UserID).
		Str("transaction_id", t.ID).
		Str("type", string(t.Type)).
		Msg("transaction recorded")

	return t, nil
}

func (uc *TransactionUseCase) insert(ctx context.Context, t *domain.Transaction, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.txRepo.LockUser(ctx, tx, t.UserID); err != nil {
		return err
	}

	dup, err := uc.txRepo.HasDuplicateSince(ctx, tx, t, now.Add(-domain.DuplicateWindow))
	if err != nil {
		return err
	}
	if dup {
		return domain.ErrDuplicateTransaction
	}

	if err := uc.txRepo.Create(ctx, tx, t); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// List returns the user's transactions matching the filter token, newest
// first. The store narrows the query and the same range is applied again
// in process so both agree on the boundaries.
func (uc *TransactionUseCase) List(ctx context.Context, userID, token string) ([]domain.Transaction, error) {
	r := report.Resolve(token, uc.clock.Now().In(uc.settings.Location))

	txs, err := uc.txRepo.ListByUser(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	return report.Filter(report.InLocation(txs, uc.settings.Location), r), nil
}

// DayTransactions is one calendar day split by type.
type DayTransactions struct {
	Date     time.Time
	Income   []domain.Transaction
	Expenses []domain.Transaction
}

// ListForDay returns the transactions of one calendar day given as
// YYYY-MM-DD in the report time zone.
func (uc *TransactionUseCase) ListForDay(ctx context.Context, userID, day string) (*DayTransactions, error) {
	date, err := time.ParseInLocation(time.DateOnly, day, uc.settings.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, day)
	}
	r := report.DayRange(date)

	txs, err := uc.txRepo.ListByUser(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	txs = report.Filter(report.InLocation(txs, uc.settings.Location), r)

	return &DayTransactions{
		Date:     r.Start,
		Income:   report.FilterByType(txs, domain.TransactionTypeIncome),
		Expenses: report.FilterByType(txs, domain.TransactionTypeExpense),
	}, nil
}
