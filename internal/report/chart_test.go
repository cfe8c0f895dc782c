package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finlab/internal/domain"
)

func TestBuildLineChart(t *testing.T) {
	chart := BuildLineChart(scenario(), Daily, SeriesBoth)

	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-10"}, chart.Keys)
	assert.Equal(t, []string{"1 Jun", "2 Jun", "10 Jun"}, chart.Labels)
	require.Len(t, chart.Series, 2)

	assert.Equal(t, "Income", chart.Series[0].Name)
	assert.Equal(t, "#38ef7d", chart.Series[0].Color)
	assert.Equal(t, []string{"1000", "0", "0"}, decimalStrings(chart.Series[0].Values))

	assert.Equal(t, "Expenses", chart.Series[1].Name)
	assert.Equal(t, []string{"0", "300", "200"}, decimalStrings(chart.Series[1].Values))
}

func TestBuildLineChart_WeeklyAndSelection(t *testing.T) {
	chart := BuildLineChart(scenario(), Weekly, SeriesExpense)

	assert.Equal(t, []string{"Week 27 May", "Week 10 Jun"}, chart.Labels)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, []string{"300", "200"}, decimalStrings(chart.Series[0].Values))
}

func TestBuildLineChart_Empty(t *testing.T) {
	chart := BuildLineChart(nil, Monthly, SeriesBoth)

	assert.True(t, chart.Empty())
	assert.Equal(t, []string{NoDataLabel}, chart.Labels)
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "Jun 2024", BucketLabel("2024-06", Monthly))
	assert.Equal(t, "Week 3 Jun", BucketLabel("2024-06-03", Weekly))
	assert.Equal(t, "garbage", BucketLabel("garbage", Daily))
}

func TestBuildPieChart(t *testing.T) {
	txs := append(scenario(),
		expense("Travel", 300, day(2024, time.June, 3)),
		expense("", 200, day(2024, time.June, 4)),
	)

	chart := BuildPieChart(txs, domain.TransactionTypeExpense)

	require.False(t, chart.Empty)
	require.Len(t, chart.Slices, 3)
	assert.Equal(t, "Food", chart.Slices[0].Label)
	assert.Equal(t, "#667eea", chart.Slices[0].Color)
	assert.Equal(t, "50", chart.Slices[0].Percent.String())
	assert.Equal(t, "Travel", chart.Slices[1].Label)
	assert.Equal(t, "#38ef7d", chart.Slices[1].Color)
	assert.Equal(t, domain.UncategorizedLabel, chart.Slices[2].Label)
	assert.Equal(t, "1000", chart.Total.String())
}

func TestBuildPieChart_NoData(t *testing.T) {
	chart := BuildPieChart(scenario(), "Refund")

	assert.True(t, chart.Empty)
	require.Len(t, chart.Slices, 1)
	assert.Equal(t, NoDataLabel, chart.Slices[0].Label)
	assert.Equal(t, "#e0e0e0", chart.Slices[0].Color)
	assert.Equal(t, "1", chart.Slices[0].Value.String())
}

func TestPaletteColorCycles(t *testing.T) {
	assert.Equal(t, PaletteColor(0), PaletteColor(len(palette)))
}

func TestParseSeriesSelection(t *testing.T) {
	assert.Equal(t, SeriesIncome, ParseSeriesSelection("INCOME"))
	assert.Equal(t, SeriesBoth, ParseSeriesSelection(""))
}

func decimalStrings(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
