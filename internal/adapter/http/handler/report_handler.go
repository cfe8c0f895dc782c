package handler

import (
	"context"
	"net/http"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
	"github.com/iho/finlab/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context, userID, token string) (*usecase.SummaryReport, error)
	LineChart(ctx context.Context, userID, token string, g report.Granularity, sel report.SeriesSelection) (report.LineChart, error)
	PieChart(ctx context.Context, userID, token string, t domain.TransactionType) (report.PieChart, error)
	Context(ctx context.Context, userID string) (string, error)
}

// ReportHandler serves dashboard reports. Every endpoint takes a
// ?filter= token; unknown tokens mean today.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Summary returns totals, averages and top categories.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.reportUC.Summary(r.Context(), user.ID, r.URL.Query().Get("filter"))
	if err != nil {
		writeDomainError(w, err, "failed to build summary")
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// Line returns bucketed income/expense series. ?granularity= overrides
// the default grouping for the filter and ?series= picks the lines.
func (h *ReportHandler) Line(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var g report.Granularity
	if raw := q.Get("granularity"); raw != "" {
		parsed, ok := report.ParseGranularity(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid granularity", "expected daily, weekly or monthly")
			return
		}
		g = parsed
	}

	chart, err := h.reportUC.LineChart(r.Context(), user.ID, q.Get("filter"), g, report.ParseSeriesSelection(q.Get("series")))
	if err != nil {
		writeDomainError(w, err, "failed to build line chart")
		return
	}

	writeJSON(w, http.StatusOK, dto.LineChartFromReport(chart))
}

// Pie returns the category breakdown for ?type= (Expense by default).
func (h *ReportHandler) Pie(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	txType := domain.TransactionTypeExpense
	if raw := q.Get("type"); raw != "" {
		parsed, err := domain.ParseTransactionType(raw)
		if err != nil {
			writeDomainError(w, err, "invalid type")
			return
		}
		txType = parsed
	}

	chart, err := h.reportUC.PieChart(r.Context(), user.ID, q.Get("filter"), txType)
	if err != nil {
		writeDomainError(w, err, "failed to build pie chart")
		return
	}

	writeJSON(w, http.StatusOK, dto.PieChartFromReport(chart))
}

// Context returns the text the assistant is grounded on.
func (h *ReportHandler) Context(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	text, err := h.reportUC.Context(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "failed to build context")
		return
	}

	writeJSON(w, http.StatusOK, dto.ContextResponse{Context: text})
}
