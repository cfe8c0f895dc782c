package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func income(amount int64, at time.Time) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionTypeIncome, Category: "Salary", Amount: decimal.NewFromInt(amount), OccurredAt: at}
}

func expense(category string, amount int64, at time.Time) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionTypeExpense, Category: category, Amount: decimal.NewFromInt(amount), OccurredAt: at}
}

// scenario is the three-transaction June 2024 example used across tests.
func scenario() []domain.Transaction {
	return []domain.Transaction{
		income(1000, day(2024, time.June, 1)),
		expense("Food", 300, day(2024, time.June, 2)),
		expense("Food", 200, day(2024, time.June, 10)),
	}
}
