package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

// Report kinds used for caching and metrics.
const (
	ReportKindSummary = "summary"
	ReportKindLine    = "line"
	ReportKindPie     = "pie"
	ReportKindContext = "context"
)

// ReportUseCase runs the reporting pipeline over a user's transactions.
type ReportUseCase struct {
	txRepo   TransactionRepository
	cache    ReportCache
	clock    Clock
	metrics  Metrics
	settings ReportSettings
	logger   zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	txRepo TransactionRepository,
	cache ReportCache,
	clock Clock,
	metrics Metrics,
	settings ReportSettings,
	logger zerolog.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		txRepo:   txRepo,
		cache:    cache,
		clock:    clock,
		metrics:  metrics,
		settings: settings.withDefaults(),
		logger:   logger.With().Str("component", "reports").Logger(),
	}
}

// SummaryReport is a Summary together with the window it covers.
type SummaryReport struct {
	Summary report.Summary
	Range   report.Range
	Filter  string
}

// Summary aggregates the user's transactions inside the filter window.
func (uc *ReportUseCase) Summary(ctx context.Context, userID, token string) (*SummaryReport, error) {
	now := uc.now()
	token = report.NormalizeToken(token)
	field := cacheField(ReportKindSummary, token, now)

	var cached SummaryReport
	if uc.fromCache(ctx, userID, field, &cached) {
		uc.metrics.ReportServed(ReportKindSummary, true)
		return &cached, nil
	}

	txs, r, err := uc.load(ctx, userID, token, now)
	if err != nil {
		return nil, err
	}

	out := &SummaryReport{
		Summary: report.Summarize(txs, uc.settings.Presentation, uc.settings.TopN),
		Range:   r,
		Filter:  token,
	}

	uc.toCache(ctx, userID, field, out)
	uc.metrics.ReportServed(ReportKindSummary, false)
	return out, nil
}

// LineChart buckets the filter window at the dashboard granularity for the
// token, or at g when one is given.
func (uc *ReportUseCase) LineChart(ctx context.Context, userID, token string, g report.Granularity, sel report.SeriesSelection) (report.LineChart, error) {
	txs, _, err := uc.load(ctx, userID, token, uc.now())
	if err != nil {
		return report.LineChart{}, err
	}

	if g == "" {
		g = report.GranularityFor(token)
	}

	uc.metrics.ReportServed(ReportKindLine, false)
	return report.BuildLineChart(txs, g, sel), nil
}

// PieChart breaks down one transaction type by category.
func (uc *ReportUseCase) PieChart(ctx context.Context, userID, token string, t domain.TransactionType) (report.PieChart, error) {
	if !t.IsValid() {
		return report.PieChart{}, domain.ErrInvalidTransactionType
	}

	txs, _, err := uc.load(ctx, userID, token, uc.now())
	if err != nil {
		return report.PieChart{}, err
	}

	uc.metrics.ReportServed(ReportKindPie, false)
	return report.BuildPieChart(txs, t), nil
}

// Context renders the assistant grounding text over the user's whole history.
func (uc *ReportUseCase) Context(ctx context.Context, userID string) (string, error) {
	now := uc.now()
	field := cacheField(ReportKindContext, report.TokenAll, now)

	var cached string
	if uc.fromCache(ctx, userID, field, &cached) {
		uc.metrics.ReportServed(ReportKindContext, true)
		return cached, nil
	}

	txs, _, err := uc.load(ctx, userID, report.TokenAll, now)
	if err != nil {
		return "", err
	}

	text := report.BuildContext(txs, uc.settings.Presentation)

	uc.toCache(ctx, userID, field, text)
	uc.metrics.ReportServed(ReportKindContext, false)
	return text, nil
}

func (uc *ReportUseCase) now() time.Time {
	return uc.clock.Now().In(uc.settings.Location)
}

// load fetches every transaction once and filters in process, so every
// report agrees with the transaction list on range boundaries.
func (uc *ReportUseCase) load(ctx context.Context, userID, token string, now time.Time) ([]domain.Transaction, report.Range, error) {
	r := report.Resolve(token, now)

	all, err := uc.txRepo.ListByUser(ctx, userID, report.Range{})
	if err != nil {
		return nil, r, err
	}

	return report.Filter(report.InLocation(all, uc.settings.Location), r), r, nil
}

// cacheField keys a report by kind, filter and day, since relative ranges
// move when the day changes.
func cacheField(kind, token string, now time.Time) string {
	return kind + ":" + token + ":" + now.Format(time.DateOnly)
}

func (uc *ReportUseCase) fromCache(ctx context.Context, userID, field string, dst any) bool {
	raw, ok, err := uc.cache.Get(ctx, userID, field)
	if err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Str("field", field).Msg("report cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		uc.logger.Warn().Err(err).Str("field", field).Msg("discarding unreadable cached report")
		return false
	}
	return true
}

func (uc *ReportUseCase) toCache(ctx context.Context, userID, field string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		uc.logger.Warn().Err(err).Str("field", field).Msg("report not cacheable")
		return
	}
	if err := uc.cache.Set(ctx, userID, field, raw, uc.settings.CacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("user_id", userID).Str("field", field).Msg("report cache write failed")
	}
}
