package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/postgres/generated"
)

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

// numericToDecimal treats NULL and non-finite values as zero.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func rowToTransaction(row generated.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:          row.ID,
		UserID:      row.UserID,
		Type:        domain.TransactionType(row.Type),
		Category:    row.Category,
		Description: row.Description,
		Amount:      numericToDecimal(row.Amount),
		OccurredAt:  row.OccurredAt.Time,
		CreatedAt:   row.CreatedAt.Time,
	}
}

func rowToUser(row generated.User) *domain.User {
	return &domain.User{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Role:           domain.Role(row.Role),
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
