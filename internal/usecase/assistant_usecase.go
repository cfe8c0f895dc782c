package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/finlab/internal/domain"
)

const assistantPreamble = `You are a helpful financial assistant for a personal finance tracking application.
You have access to the user's transaction data and their personal goals and should provide personalized financial advice based on their actual spending and income patterns.

Here is the user's financial data:
%s
Guidelines:
- Provide specific, actionable advice based on their actual financial data
- Be encouraging and supportive
- When discussing amounts, use the currency symbol %s
- Keep responses concise but informative
- If asked about specific transactions or categories, refer to the data provided
- Suggest ways to save money or optimize spending based on their patterns
- If they ask about something not in their data, let them know and provide general advice
- Format your responses with clear paragraphs and bullet points when appropriate
- Consider the user's stated financial goals and timeframe when giving advice
`

// ContextProvider renders the financial context of a user.
type ContextProvider interface {
	Context(ctx context.Context, userID string) (string, error)
}

// AssistantUseCase answers chat messages grounded in the user's data.
type AssistantUseCase struct {
	client     AssistantClient
	contexts   ContextProvider
	onboarding OnboardingRepository
	clock      Clock
	metrics    Metrics
	currency   string
	logger     zerolog.Logger
}

// NewAssistantUseCase creates a new AssistantUseCase.
func NewAssistantUseCase(
	client AssistantClient,
	contexts ContextProvider,
	onboarding OnboardingRepository,
	clock Clock,
	metrics Metrics,
	currency string,
	logger zerolog.Logger,
) *AssistantUseCase {
	return &AssistantUseCase{
		client:     client,
		contexts:   contexts,
		onboarding: onboarding,
		clock:      clock,
		metrics:    metrics,
		currency:   currency,
		logger:     logger.With().Str("component", "assistant").Logger(),
	}
}

// ChatInput is one user message with the conversation so far.
type ChatInput struct {
	UserID   string
	Username string
	Message  string
	History  []domain.ChatMessage
}

// Chat builds the grounded prompt and returns the assistant's reply.
func (uc *AssistantUseCase) Chat(ctx context.Context, input ChatInput) (string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}

	financial, err := uc.contexts.Context(ctx, input.UserID)
	if err != nil {
		return "", fmt.Errorf("build financial context: %w", err)
	}

	var goals string
	profile, err := uc.onboarding.GetByUser(ctx, input.UserID)
	switch {
	case err == nil:
		goals = profile.GoalSummary()
	case errors.Is(err, domain.ErrOnboardingNotFound):
	default:
		// Goals only enrich the prompt; answer without them.
		uc.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("onboarding lookup failed")
	}

	messages := BuildConversation(
		SystemPrompt(financial, input.Username, goals, uc.currency),
		input.History,
		message,
	)

	start := uc.clock.Now()
	reply, err := uc.client.Complete(ctx, messages)
	elapsed := uc.clock.Now().Sub(start)
	if err != nil {
		uc.metrics.AssistantCompleted("error", elapsed)
		uc.logger.Error().Err(err).Str("user_id", input.UserID).Dur("elapsed", elapsed).Msg("assistant request failed")
		return "", err
	}

	uc.metrics.AssistantCompleted("ok", elapsed)
	return reply, nil
}

// SystemPrompt assembles the instruction preamble, the financial context,
// the user's goals and name.
func SystemPrompt(financialContext, username, goals, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, assistantPreamble, financialContext, currency)
	if goals != "" {
		fmt.Fprintf(&b, "\nThe user's financial goal: %s\n", goals)
	}
	if username != "" {
		fmt.Fprintf(&b, "\nRemember: The user's name is %s.", username)
	}
	return b.String()
}

// BuildConversation keeps the last domain.MaxChatHistory user and assistant
// turns of history and appends the new message. Client-supplied system
// turns are dropped.
func BuildConversation(system string, history []domain.ChatMessage, message string) []domain.ChatMessage {
	turns := make([]domain.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) > domain.MaxChatHistory {
		turns = turns[len(turns)-domain.MaxChatHistory:]
	}

	out := make([]domain.ChatMessage, 0, len(turns)+2)
	out = append(out, domain.ChatMessage{Role: domain.ChatRoleSystem, Content: system})
	out = append(out, turns...)
	out = append(out, domain.ChatMessage{Role: domain.ChatRoleUser, Content: message})
	return out
}

