package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
	"github.com/iho/finlab/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse carries a bearer token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string                 `json:"id"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        time.Time              `json:"date"`
	CreatedAt   time.Time              `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i := range txs {
		result[i] = TransactionFromDomain(&txs[i])
	}
	return result
}

// TransactionListResponse is a page of transactions.
type TransactionListResponse struct {
	Filter       string                 `json:"filter"`
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int                    `json:"total"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// DayTransactionsResponse is the daily view split by type.
type DayTransactionsResponse struct {
	Date          string                 `json:"date"`
	Income        []*TransactionResponse `json:"income"`
	Expenses      []*TransactionResponse `json:"expenses"`
	TotalIncome   decimal.Decimal        `json:"total_income"`
	TotalExpenses decimal.Decimal        `json:"total_expenses"`
}

// DayTransactionsFromUseCase converts the daily view.
func DayTransactionsFromUseCase(d *usecase.DayTransactions) *DayTransactionsResponse {
	return &DayTransactionsResponse{
		Date:          d.Date.Format(time.DateOnly),
		Income:        TransactionsFromDomain(d.Income),
		Expenses:      TransactionsFromDomain(d.Expenses),
		TotalIncome:   sum(d.Income),
		TotalExpenses: sum(d.Expenses),
	}
}

func sum(txs []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total
}

// CategoryResponse represents a custom category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse lists default and custom categories.
type CategoryListResponse struct {
	Defaults []string            `json:"defaults"`
	Custom   []*CategoryResponse `json:"custom"`
	All      []string            `json:"all"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// CategoryListFromUseCase converts a category list to a response.
func CategoryListFromUseCase(l *usecase.CategoryList) *CategoryListResponse {
	custom := make([]*CategoryResponse, len(l.Custom))
	for i := range l.Custom {
		custom[i] = CategoryFromDomain(&l.Custom[i])
	}
	return &CategoryListResponse{
		Defaults: l.Defaults,
		Custom:   custom,
		All:      l.Names(),
	}
}

// OnboardingResponse echoes the stored answers.
type OnboardingResponse struct {
	domain.OnboardingProfile
	UpdatedAt time.Time `json:"updated_at"`
}

// OnboardingFromDomain converts a profile to a response.
func OnboardingFromDomain(p *domain.OnboardingProfile) *OnboardingResponse {
	return &OnboardingResponse{OnboardingProfile: *p, UpdatedAt: p.UpdatedAt}
}

// SummaryResponse is the dashboard summary card.
type SummaryResponse struct {
	Filter            string                 `json:"filter"`
	Start             *time.Time             `json:"start,omitempty"`
	End               *time.Time             `json:"end,omitempty"`
	TotalIncome       decimal.Decimal        `json:"total_income"`
	TotalExpenses     decimal.Decimal        `json:"total_expenses"`
	NetSavings        decimal.Decimal        `json:"net_savings"`
	AvgMonthlyIncome  decimal.Decimal        `json:"avg_monthly_income"`
	AvgMonthlyExpense decimal.Decimal        `json:"avg_monthly_expense"`
	TopCategories     []report.CategoryTotal `json:"top_categories"`
	TransactionCount  int                    `json:"transaction_count"`
	IncomeCount       int                    `json:"income_count"`
	ExpenseCount      int                    `json:"expense_count"`
	Earliest          *time.Time             `json:"earliest,omitempty"`
	Latest            *time.Time             `json:"latest,omitempty"`
}

// SummaryFromUseCase converts a summary report.
func SummaryFromUseCase(s *usecase.SummaryReport) *SummaryResponse {
	resp := &SummaryResponse{
		Filter:            s.Filter,
		TotalIncome:       s.Summary.TotalIncome,
		TotalExpenses:     s.Summary.TotalExpenses,
		NetSavings:        s.Summary.NetSavings,
		AvgMonthlyIncome:  s.Summary.AvgMonthlyIncome,
		AvgMonthlyExpense: s.Summary.AvgMonthlyExpense,
		TopCategories:     s.Summary.TopCategories,
		TransactionCount:  s.Summary.TransactionCount,
		IncomeCount:       s.Summary.IncomeCount,
		ExpenseCount:      s.Summary.ExpenseCount,
		Earliest:          optionalTime(s.Summary.Earliest),
		Latest:            optionalTime(s.Summary.Latest),
	}
	if resp.TopCategories == nil {
		resp.TopCategories = []report.CategoryTotal{}
	}
	if s.Range.Bounded {
		resp.Start = optionalTime(s.Range.Start)
		resp.End = optionalTime(s.Range.End)
	}
	return resp
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// SeriesResponse is one line of a line chart.
type SeriesResponse struct {
	Name   string            `json:"name"`
	Color  string            `json:"color"`
	Values []decimal.Decimal `json:"values"`
}

// LineChartResponse is a bucketed time series.
type LineChartResponse struct {
	Granularity report.Granularity `json:"granularity"`
	Keys        []string           `json:"keys"`
	Labels      []string           `json:"labels"`
	Series      []SeriesResponse   `json:"series"`
}

// LineChartFromReport converts a line chart.
func LineChartFromReport(c report.LineChart) *LineChartResponse {
	series := make([]SeriesResponse, len(c.Series))
	for i, s := range c.Series {
		series[i] = SeriesResponse{Name: s.Name, Color: s.Color, Values: s.Values}
	}
	keys := c.Keys
	if keys == nil {
		keys = []string{}
	}
	return &LineChartResponse{
		Granularity: c.Granularity,
		Keys:        keys,
		Labels:      c.Labels,
		Series:      series,
	}
}

// SliceResponse is one pie slice.
type SliceResponse struct {
	Label   string          `json:"label"`
	Color   string          `json:"color"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

// PieChartResponse is a category breakdown.
type PieChartResponse struct {
	Type   domain.TransactionType `json:"type"`
	Slices []SliceResponse        `json:"slices"`
	Total  decimal.Decimal        `json:"total"`
	Empty  bool                   `json:"empty"`
}

// PieChartFromReport converts a pie chart.
func PieChartFromReport(c report.PieChart) *PieChartResponse {
	slices := make([]SliceResponse, len(c.Slices))
	for i, s := range c.Slices {
		slices[i] = SliceResponse{Label: s.Label, Color: s.Color, Value: s.Value, Percent: s.Percent}
	}
	return &PieChartResponse{Type: c.Type, Slices: slices, Total: c.Total, Empty: c.Empty}
}

// ContextResponse carries the rendered financial context.
type ContextResponse struct {
	Context string `json:"context"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
