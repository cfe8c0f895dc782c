package report

import (
	"time"

	"github.com/iho/finlab/internal/domain"
)

// Filter returns the transactions whose OccurredAt lies in r, preserving
// input order. An unbounded range returns txs itself.
func Filter(txs []domain.Transaction, r Range) []domain.Transaction {
	if !r.Bounded {
		return txs
	}

	out := make([]domain.Transaction, 0, len(txs))
	for i := range txs {
		if r.Contains(txs[i].OccurredAt) {
			out = append(out, txs[i])
		}
	}
	return out
}

// FilterByType keeps only transactions of type t.
func FilterByType(txs []domain.Transaction, t domain.TransactionType) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for i := range txs {
		if txs[i].Type == t {
			out = append(out, txs[i])
		}
	}
	return out
}

// InLocation returns a copy of txs with OccurredAt expressed in loc, so
// that day, week and month boundaries are computed in that zone.
func InLocation(txs []domain.Transaction, loc *time.Location) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	for i := range txs {
		out[i] = txs[i]
		out[i].OccurredAt = txs[i].OccurredAt.In(loc)
	}
	return out
}
