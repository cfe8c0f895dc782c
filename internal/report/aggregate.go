package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
)

// averagingMonth is the month length used for monthly averages.
const averagingMonth = 30 * 24 * time.Hour

// DefaultTopCategories is how many categories a Summary ranks.
const DefaultTopCategories = 5

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the aggregate view of a set of transactions.
type Summary struct {
	Earliest          time.Time
	Latest            time.Time
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetSavings        decimal.Decimal
	AvgMonthlyIncome  decimal.Decimal
	AvgMonthlyExpense decimal.Decimal
	TopCategories     []CategoryTotal
	TransactionCount  int
	IncomeCount       int
	ExpenseCount      int
}

// Empty reports whether the summary covers no transactions.
func (s Summary) Empty() bool {
	return s.TransactionCount == 0
}

// Aggregator computes sums and rankings over a fixed transaction set.
type Aggregator struct {
	txs  []domain.Transaction
	pres Presentation
}

// NewAggregator wraps txs. The slice is only read.
func NewAggregator(txs []domain.Transaction, pres Presentation) *Aggregator {
	return &Aggregator{txs: txs, pres: pres.withDefaults()}
}

// TotalByType sums the amounts of transactions of type t.
func (a *Aggregator) TotalByType(t domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for i := range a.txs {
		if a.txs[i].Type == t {
			total = total.Add(a.txs[i].Amount)
		}
	}
	return total
}

// CountByType counts transactions of type t.
func (a *Aggregator) CountByType(t domain.TransactionType) int {
	n := 0
	for i := range a.txs {
		if a.txs[i].Type == t {
			n++
		}
	}
	return n
}

// CategoryTotals sums amounts per category for transactions of type t,
// largest first. Equal totals keep the order in which the categories were
// first seen. An empty category is reported as Uncategorized.
func (a *Aggregator) CategoryTotals(t domain.TransactionType) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal

	for i := range a.txs {
		if a.txs[i].Type != t {
			continue
		}
		cat := a.txs[i].Category
		if cat == "" {
			cat = domain.UncategorizedLabel
		}
		pos, ok := index[cat]
		if !ok {
			pos = len(totals)
			index[cat] = pos
			totals = append(totals, CategoryTotal{Category: cat, Amount: decimal.Zero})
		}
		totals[pos].Amount = totals[pos].Amount.Add(a.txs[i].Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	return totals
}

func (a *Aggregator) topExpenseCategories(n int) []CategoryTotal {
	totals := a.CategoryTotals(domain.TransactionTypeExpense)
	if n < 0 {
		n = 0
	}
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// TopCategories renders the n largest expense categories as
// "<category>: <symbol><amount>".
func (a *Aggregator) TopCategories(n int) []string {
	top := a.topExpenseCategories(n)
	out := make([]string, len(top))
	for i, ct := range top {
		out[i] = a.pres.categoryLine(ct)
	}
	return out
}

// NetSavings is total income minus total expenses.
func (a *Aggregator) NetSavings() decimal.Decimal {
	return a.TotalByType(domain.TransactionTypeIncome).Sub(a.TotalByType(domain.TransactionTypeExpense))
}

// DateSpan returns the earliest and latest OccurredAt. Zero timestamps are
// ignored; ok is false when nothing is left.
func (a *Aggregator) DateSpan() (earliest, latest time.Time, ok bool) {
	for i := range a.txs {
		at := a.txs[i].OccurredAt
		if at.IsZero() {
			continue
		}
		if !ok || at.Before(earliest) {
			earliest = at
		}
		if !ok || at.After(latest) {
			latest = at
		}
		ok = true
	}
	return earliest, latest, ok
}

// MonthsSpanned is the date span in 30-day months, never below one.
func (a *Aggregator) MonthsSpanned() decimal.Decimal {
	earliest, latest, ok := a.DateSpan()
	if !ok {
		return decimal.NewFromInt(1)
	}
	months := decimal.NewFromInt(int64(latest.Sub(earliest))).
		Div(decimal.NewFromInt(int64(averagingMonth)))
	return decimal.Max(months, decimal.NewFromInt(1))
}

// MonthlyAverage divides the total of type t by the months spanned.
func (a *Aggregator) MonthlyAverage(t domain.TransactionType) decimal.Decimal {
	return a.TotalByType(t).Div(a.MonthsSpanned())
}

// Summarize computes every figure at once, ranking topN expense categories.
func (a *Aggregator) Summarize(topN int) Summary {
	income := a.TotalByType(domain.TransactionTypeIncome)
	expenses := a.TotalByType(domain.TransactionTypeExpense)
	months := a.MonthsSpanned()
	earliest, latest, _ := a.DateSpan()

	return Summary{
		TotalIncome:       income,
		TotalExpenses:     expenses,
		NetSavings:        income.Sub(expenses),
		AvgMonthlyIncome:  income.Div(months),
		AvgMonthlyExpense: expenses.Div(months),
		TopCategories:     a.topExpenseCategories(topN),
		TransactionCount:  len(a.txs),
		IncomeCount:       a.CountByType(domain.TransactionTypeIncome),
		ExpenseCount:      a.CountByType(domain.TransactionTypeExpense),
		Earliest:          earliest,
		Latest:            latest,
	}
}

// Summarize is a shortcut for NewAggregator(txs, pres).Summarize(topN).
func Summarize(txs []domain.Transaction, pres Presentation, topN int) Summary {
	return NewAggregator(txs, pres).Summarize(topN)
}
