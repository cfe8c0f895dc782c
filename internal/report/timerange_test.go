package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 15, 23, 59, 59, 999_000_000, time.UTC)

	tests := []struct {
		token string
		start time.Time
	}{
		{"today", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"1day", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"7days", time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)},
		{"1week", time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)},
		{"2weeks", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"1month", time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)},
		{"3months", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"6months", time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC)},
		{"bogus", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{" 7DAYS ", time.Date(2024, time.June, 8, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			r := Resolve(tt.token, now)
			require.True(t, r.Bounded)
			assert.True(t, r.Start.Equal(tt.start), "start = %s, want %s", r.Start, tt.start)
			assert.True(t, r.End.Equal(end), "end = %s, want %s", r.End, end)
		})
	}
}

func TestResolve_All(t *testing.T) {
	r := Resolve("all", time.Now())
	assert.False(t, r.Bounded)
	assert.True(t, r.Contains(time.Time{}))
}

func TestResolve_UsesLocationOfNow(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	// 20:00 UTC on the 14th is already the 15th in IST.
	now := time.Date(2024, time.June, 14, 20, 0, 0, 0, time.UTC).In(ist)

	r := Resolve("today", now)

	assert.Equal(t, "2024-06-15T00:00:00+05:30", r.Start.Format(time.RFC3339))
	assert.Equal(t, 15, r.End.Day())
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	r := Resolve("today", time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC))

	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.Start.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, TokenToday, NormalizeToken("next-decade"))
	assert.Equal(t, Token3Months, NormalizeToken("3Months"))
	assert.True(t, KnownToken("all"))
	assert.False(t, KnownToken(""))
}

func TestDayRange(t *testing.T) {
	r := DayRange(time.Date(2024, time.June, 5, 18, 30, 0, 0, time.UTC))

	assert.True(t, r.Contains(time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, time.June, 6, 0, 0, 0, 0, time.UTC)))
}
