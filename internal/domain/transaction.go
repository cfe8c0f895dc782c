package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// DefaultDescription is stored when a transaction is created without one.
const DefaultDescription = "No description"

// UncategorizedLabel replaces an empty category in reports.
const UncategorizedLabel = "Uncategorized"

// DuplicateWindow is how long an identical transaction is rejected after creation.
const DuplicateWindow = 30 * time.Second

// DefaultCategories are available to every user.
var DefaultCategories = []string{"Food", "Travel", "Entertainment", "Other"}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// ParseTransactionType accepts the type case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return TransactionTypeIncome, nil
	case "expense":
		return TransactionTypeExpense, nil
	}

	return "", ErrInvalidTransactionType
}

// Transaction is a single income or expense record owned by one user.
// Transactions are never updated after creation.
type Transaction struct {
	OccurredAt  time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	Type        TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Validate checks the invariants of a new transaction.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	return ValidateCategoryName(t.Category)
}

// Normalize fills defaults for optional fields.
func (t *Transaction) Normalize(now time.Time) {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		t.Description = DefaultDescription
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
}

// ParseAmount converts loosely typed input to a decimal.
// Unparseable input yields zero so one bad record cannot fail a whole report.
func ParseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	default:
		return decimal.Zero
	}
}
