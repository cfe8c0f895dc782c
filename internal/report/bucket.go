package report

import (
	"sort"
	"strings"
	"time"

	"github.com/iho/finlab/internal/domain"
)

// Granularity selects the width of a time bucket.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// ParseGranularity accepts a granularity name case-insensitively.
func ParseGranularity(s string) (Granularity, bool) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Daily, Weekly, Monthly:
		return g, true
	}
	return "", false
}

// GranularityFor picks the line chart grouping for a filter token: weekly
// for quarter and half-year views, monthly for all history, daily otherwise.
func GranularityFor(token string) Granularity {
	switch NormalizeToken(token) {
	case Token3Months, Token6Months:
		return Weekly
	case TokenAll:
		return Monthly
	default:
		return Daily
	}
}

// WeekStart returns midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	// Sunday is the last day of the week.
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// BucketKey returns the sortable key of the bucket holding t, computed in
// t's own location: YYYY-MM-DD for days and weeks, YYYY-MM for months.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case Weekly:
		return WeekStart(t).Format(time.DateOnly)
	case Monthly:
		return t.Format("2006-01")
	default:
		return t.Format(time.DateOnly)
	}
}

// Buckets maps a bucket key to its members in input order. Empty buckets
// are never present.
type Buckets map[string][]domain.Transaction

// Group places every transaction in exactly one bucket.
func Group(txs []domain.Transaction, g Granularity) Buckets {
	b := make(Buckets)
	for i := range txs {
		key := BucketKey(txs[i].OccurredAt, g)
		b[key] = append(b[key], txs[i])
	}
	return b
}

// Keys returns the bucket keys in chronological order.
func (b Buckets) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len counts the transactions across all buckets.
func (b Buckets) Len() int {
	n := 0
	for _, members := range b {
		n += len(members)
	}
	return n
}
