package report

import (
	"strings"
	"time"
)

// Filter tokens understood by Resolve.
const (
	TokenToday   = "today"
	Token1Day    = "1day"
	Token7Days   = "7days"
	Token1Week   = "1week"
	Token2Weeks  = "2weeks"
	Token1Month  = "1month"
	Token3Months = "3months"
	Token6Months = "6months"
	TokenAll     = "all"
)

type lookback struct {
	days   int
	months int
}

var lookbacks = map[string]lookback{
	TokenToday:   {},
	Token1Day:    {},
	Token7Days:   {days: 7},
	Token1Week:   {days: 7},
	Token2Weeks:  {days: 14},
	Token1Month:  {months: 1},
	Token3Months: {months: 3},
	Token6Months: {months: 6},
}

// Range is an inclusive [Start, End] window. An unbounded range matches
// every instant.
type Range struct {
	Start   time.Time
	End     time.Time
	Bounded bool
}

// Contains reports whether t lies inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	if !r.Bounded {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// KnownToken reports whether token is one Resolve understands without
// falling back.
func KnownToken(token string) bool {
	token = normalizeToken(token)
	_, ok := lookbacks[token]
	return ok || token == TokenAll
}

// NormalizeToken returns the canonical form of token, mapping anything
// unknown to TokenToday.
func NormalizeToken(token string) string {
	token = normalizeToken(token)
	if !KnownToken(token) {
		return TokenToday
	}
	return token
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Resolve maps a filter token to a concrete range relative to now. The
// location of now decides where days begin and end. Unknown tokens resolve
// like TokenToday.
func Resolve(token string, now time.Time) Range {
	token = NormalizeToken(token)
	if token == TokenAll {
		return Range{}
	}

	lb := lookbacks[token]
	start := StartOfDay(now.AddDate(0, -lb.months, -lb.days))

	return Range{Start: start, End: EndOfDay(now), Bounded: true}
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayRange is the inclusive range covering the single calendar day of t.
func DayRange(t time.Time) Range {
	return Range{Start: StartOfDay(t), End: EndOfDay(t), Bounded: true}
}
