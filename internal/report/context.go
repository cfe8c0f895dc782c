package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iho/finlab/internal/domain"
)

// NoHistoryContext is the context string for a user without transactions.
const NoHistoryContext = "User has no transaction history available."

// RecentLimit is how many recent transactions the context lists.
const RecentLimit = 10

func (p Presentation) categoryLine(ct CategoryTotal) string {
	return fmt.Sprintf("%s: %s", ct.Category, p.Money(ct.Amount))
}

// Recent returns up to n transactions, newest first. txs is not modified.
func Recent(txs []domain.Transaction, n int) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.After(sorted[j].OccurredAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FormatContext renders the assistant grounding text for s. The recent
// transactions are picked from txs.
func FormatContext(s Summary, txs []domain.Transaction, pres Presentation) string {
	if s.Empty() {
		return NoHistoryContext
	}
	pres = pres.withDefaults()

	top := make([]string, len(s.TopCategories))
	for i, ct := range s.TopCategories {
		top[i] = pres.categoryLine(ct)
	}

	recentTxs := Recent(txs, RecentLimit)
	recent := make([]string, len(recentTxs))
	for i, tx := range recentTxs {
		recent[i] = fmt.Sprintf("%s - %s: %s on %s",
			tx.Type, tx.Category, pres.Money(tx.Amount), pres.Date(tx.OccurredAt))
	}

	var b strings.Builder
	b.WriteString("FINANCIAL SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Income: %s\n", pres.Money(s.TotalIncome))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", pres.Money(s.TotalExpenses))
	fmt.Fprintf(&b, "- Net Savings: %s\n", pres.Money(s.NetSavings))
	fmt.Fprintf(&b, "- Number of Transactions: %d (%d income, %d expenses)\n",
		s.TransactionCount, s.IncomeCount, s.ExpenseCount)
	fmt.Fprintf(&b, "- Average Monthly Income: %s\n", pres.Money(s.AvgMonthlyIncome))
	fmt.Fprintf(&b, "- Average Monthly Expenses: %s\n", pres.Money(s.AvgMonthlyExpense))
	fmt.Fprintf(&b, "- Top Expense Categories: %s\n", orNone(strings.Join(top, ", ")))
	fmt.Fprintf(&b, "- Recent Transactions: %s\n", orNone(strings.Join(recent, "; ")))
	fmt.Fprintf(&b, "- Date Range: %s to %s\n", pres.Date(s.Earliest), pres.Date(s.Latest))

	return b.String()
}

// BuildContext summarises txs and renders the context in one step.
func BuildContext(txs []domain.Transaction, pres Presentation) string {
	return FormatContext(Summarize(txs, pres, DefaultTopCategories), txs, pres)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
