package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
)

// NoDataLabel marks the placeholder shown when a chart has nothing to plot.
const NoDataLabel = "No Data"

const (
	incomeColor  = "#38ef7d"
	expenseColor = "#ff6a00"
	noDataColor  = "#e0e0e0"
)

var palette = []string{
	"#667eea", "#38ef7d", "#ff6a00", "#ee0979", "#11998e",
	"#764ba2", "#f093fb", "#4facfe", "#43e97b", "#fa709a",
	"#fee140", "#30cfd0", "#a8edea", "#fed6e3", "#c471ed",
	"#12c2e9", "#f64f59", "#f5af19", "#fbc2eb", "#a6c1ee",
}

// PaletteColor returns the i-th slice colour, cycling through the palette.
func PaletteColor(i int) string {
	return palette[i%len(palette)]
}

// SeriesSelection picks which series a line chart carries.
type SeriesSelection string

const (
	SeriesIncome  SeriesSelection = "income"
	SeriesExpense SeriesSelection = "expense"
	SeriesBoth    SeriesSelection = "both"
)

// ParseSeriesSelection defaults to SeriesBoth for unknown input.
func ParseSeriesSelection(s string) SeriesSelection {
	switch sel := SeriesSelection(strings.ToLower(strings.TrimSpace(s))); sel {
	case SeriesIncome, SeriesExpense:
		return sel
	}
	return SeriesBoth
}

// LineSeries is one plotted line, one value per bucket.
type LineSeries struct {
	Name   string
	Color  string
	Values []decimal.Decimal
}

// LineChart is a bucketed income/expense time series.
type LineChart struct {
	Granularity Granularity
	Keys        []string
	Labels      []string
	Series      []LineSeries
}

// Empty reports whether the chart is the no-data placeholder.
func (c LineChart) Empty() bool {
	return len(c.Series) == 0
}

// BuildLineChart buckets txs at granularity g and sums each selected type
// per bucket. With no transactions the chart has a single NoDataLabel and
// no series.
func BuildLineChart(txs []domain.Transaction, g Granularity, sel SeriesSelection) LineChart {
	if len(txs) == 0 {
		return LineChart{Granularity: g, Labels: []string{NoDataLabel}}
	}

	buckets := Group(txs, g)
	keys := buckets.Keys()
	chart := LineChart{Granularity: g, Keys: keys, Labels: make([]string, len(keys))}
	for i, k := range keys {
		chart.Labels[i] = BucketLabel(k, g)
	}

	if sel == SeriesIncome || sel == SeriesBoth {
		chart.Series = append(chart.Series, bucketSeries(buckets, keys, domain.TransactionTypeIncome, "Income", incomeColor))
	}
	if sel == SeriesExpense || sel == SeriesBoth {
		chart.Series = append(chart.Series, bucketSeries(buckets, keys, domain.TransactionTypeExpense, "Expenses", expenseColor))
	}

	return chart
}

func bucketSeries(b Buckets, keys []string, t domain.TransactionType, name, color string) LineSeries {
	s := LineSeries{Name: name, Color: color, Values: make([]decimal.Decimal, len(keys))}
	for i, k := range keys {
		s.Values[i] = NewAggregator(b[k], Presentation{}).TotalByType(t)
	}
	return s
}

// BucketLabel renders a bucket key for display: "2 Jun", "Week 3 Jun" or
// "Jun 2024". Keys that do not parse are returned unchanged.
func BucketLabel(key string, g Granularity) string {
	switch g {
	case Monthly:
		t, err := time.Parse("2006-01", key)
		if err != nil {
			return key
		}
		return t.Format("Jan 2006")
	case Weekly:
		t, err := time.Parse(time.DateOnly, key)
		if err != nil {
			return key
		}
		return "Week " + t.Format("2 Jan")
	default:
		t, err := time.Parse(time.DateOnly, key)
		if err != nil {
			return key
		}
		return t.Format("2 Jan")
	}
}

// PieSlice is one category share of a pie chart.
type PieSlice struct {
	Label   string
	Color   string
	Value   decimal.Decimal
	Percent decimal.Decimal
}

// PieChart is the category breakdown of one transaction type.
type PieChart struct {
	Type   domain.TransactionType
	Slices []PieSlice
	Total  decimal.Decimal
	Empty  bool
}

// BuildPieChart breaks down transactions of type t by category, largest
// first. With nothing to show it returns a single neutral NoDataLabel slice.
func BuildPieChart(txs []domain.Transaction, t domain.TransactionType) PieChart {
	totals := NewAggregator(txs, Presentation{}).CategoryTotals(t)
	if len(totals) == 0 {
		return PieChart{
			Type:   t,
			Empty:  true,
			Total:  decimal.Zero,
			Slices: []PieSlice{{Label: NoDataLabel, Color: noDataColor, Value: decimal.NewFromInt(1), Percent: decimal.NewFromInt(100)}},
		}
	}

	total := decimal.Zero
	for _, ct := range totals {
		total = total.Add(ct.Amount)
	}

	chart := PieChart{Type: t, Total: total, Slices: make([]PieSlice, len(totals))}
	for i, ct := range totals {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = ct.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		chart.Slices[i] = PieSlice{Label: ct.Category, Color: PaletteColor(i), Value: ct.Amount, Percent: pct}
	}
	return chart
}
