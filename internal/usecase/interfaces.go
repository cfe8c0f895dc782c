package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, t *domain.Transaction) error
	// LockUser serialises concurrent writes for one user until tx ends.
	LockUser(ctx context.Context, tx Tx, userID string) error
	// HasDuplicateSince reports whether an identical transaction was created at or after since.
	HasDuplicateSince(ctx context.Context, tx Tx, t *domain.Transaction, since time.Time) (bool, error)
	// ListByUser returns the user's transactions inside r, newest first.
	ListByUser(ctx context.Context, userID string, r report.Range) ([]domain.Transaction, error)
}

// CategoryRepository defines data access for user-defined categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	ListByUser(ctx context.Context, userID string) ([]domain.Category, error)
}

// OnboardingRepository defines data access for onboarding answers.
type OnboardingRepository interface {
	Upsert(ctx context.Context, profile *domain.OnboardingProfile) error
	GetByUser(ctx context.Context, userID string) (*domain.OnboardingProfile, error)
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ReportCache stores rendered reports per user. Invalidate drops every
// entry of the user at once.
type ReportCache interface {
	Get(ctx context.Context, userID, field string) ([]byte, bool, error)
	Set(ctx context.Context, userID, field string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}

// IdempotencyStore remembers the outcome of mutating requests by key.
type IdempotencyStore interface {
	// Claim reserves key. If the key is already held it returns claimed=false
	// with the stored response, which is empty while the first request runs.
	Claim(ctx context.Context, key string, ttl time.Duration) (stored []byte, claimed bool, err error)
	// Complete records the final response for a claimed key.
	Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// AssistantClient sends a conversation to a language model and returns the reply.
type AssistantClient interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// Metrics records business events.
type Metrics interface {
	TransactionCreated(t domain.TransactionType, amount decimal.Decimal)
	DuplicateRejected()
	ReportServed(kind string, cached bool)
	AssistantCompleted(status string, elapsed time.Duration)
	AuthAttempt(status string)
}
