package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) TransactionCreated(domain.TransactionType, decimal.Decimal) {}
func (NopMetrics) DuplicateRejected() {}
func (NopMetrics) ReportServed(string, bool) {}
func (NopMetrics) AssistantCompleted(string, time.Duration) {}
func (NopMetrics) AuthAttempt(string) {}

// ReportSettings controls where days begin and how reports are rendered.
type ReportSettings struct {
	Location     *time.Location
	Presentation report.Presentation
	CacheTTL     time.Duration
	TopN         int
}

func (s ReportSettings) withDefaults() ReportSettings {
	if s.Location == nil {
		s.Location = time.UTC
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = DefaultReportCacheTTL
	}
	if s.TopN <= 0 {
		s.TopN = report.DefaultTopCategories
	}
	return s
}
