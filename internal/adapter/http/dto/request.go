package dto

import (
	"strings"
	"time"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

// RegisterRequest represents a sign-up request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{Email: r.Email, Password: r.Password}
}

// CreateTransactionRequest represents a new income or expense entry.
// Amount may be sent as a JSON number or a string.
type CreateTransactionRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
	Date        string `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input. Date accepts RFC 3339 or
// YYYY-MM-DD, the latter taken as midnight in loc.
func (r *CreateTransactionRequest) ToUseCaseInput(userID string, loc *time.Location) (usecase.AddTransactionInput, error) {
	txType, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	input := usecase.AddTransactionInput{
		UserID:      userID,
		Type:        txType,
		Category:    r.Category,
		Description: r.Description,
		Amount:      domain.ParseAmount(r.Amount),
	}

	if date := strings.TrimSpace(r.Date); date != "" {
		occurred, err := parseDate(date, loc)
		if err != nil {
			return usecase.AddTransactionInput{}, err
		}
		input.OccurredAt = &occurred
	}

	return input, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// CreateCategoryRequest represents a new custom category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// OnboardingRequest carries the questionnaire answers.
type OnboardingRequest struct {
	Interests       []string `json:"interests"`
	AppUsage        string   `json:"appUsage"`
	FinancialGoals  string   `json:"financialGoals"`
	AchievementPlan string   `json:"achievementPlan"`
	Timeframe       int      `json:"timeframe"`
	TimeframeUnit   string   `json:"timeframeUnit"`
}

// ToDomain converts the answers to a profile.
func (r *OnboardingRequest) ToDomain() domain.OnboardingProfile {
	return domain.OnboardingProfile{
		Interests:       r.Interests,
		AppUsage:        r.AppUsage,
		FinancialGoals:  r.FinancialGoals,
		AchievementPlan: r.AchievementPlan,
		Timeframe:       r.Timeframe,
		TimeframeUnit:   domain.TimeframeUnit(r.TimeframeUnit),
	}
}

// ChatRequest is one user turn plus the conversation so far.
type ChatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ChatRequest) ToUseCaseInput(user *domain.User) usecase.ChatInput {
	return usecase.ChatInput{
		UserID:   user.ID,
		Username: user.Username,
		Message:  r.Message,
		History:  r.History,
	}
}
