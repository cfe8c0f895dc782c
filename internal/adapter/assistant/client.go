// Package assistant talks to an OpenAI-compatible chat completions API.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/iho/finlab/internal/domain"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultRetryInterval   = 500 * time.Millisecond
	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
)

var errEmptyCompletion = errors.New("empty completion")

// Config configures the Client.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Timeout         time.Duration
	MaxRetries      int
	RetryInterval   time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
}

// Client implements usecase.AssistantClient. Calls are retried with
// exponential backoff and guarded by a circuit breaker.
type Client struct {
	api           *openai.Client
	breaker       *gobreaker.CircuitBreaker
	logger        zerolog.Logger
	model         string
	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
}

// New creates a Client.
func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = defaultBreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = defaultBreakerCooldown
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	logger = logger.With().Str("component", "assistant").Logger()

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "assistant",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &Client{
		api:           openai.NewClientWithConfig(apiCfg),
		breaker:       breaker,
		logger:        logger,
		model:         cfg.Model,
		timeout:       cfg.Timeout,
		maxRetries:    cfg.MaxRetries,
		retryInterval: cfg.RetryInterval,
	}
}

// Complete sends the conversation and returns the assistant's reply.
// Every upstream failure is reported as domain.ErrAssistantUnavailable.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	out, err := c.breaker.Execute(func() (any, error) {
		return c.completeWithRetry(ctx, req)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
		}
		c.logger.Error().Err(err).Str("model", c.model).Msg("chat completion failed")
		return "", fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}

	return out.(string), nil
}

func (c *Client) completeWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxElapsedTime = 0

	var reply string
	attempt := 0
	op := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.api.CreateChatCompletion(callCtx, req)
		if err != nil {
			if !isTransient(err) {
				return backoff.Permanent(err)
			}
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("transient assistant error")
			return err
		}

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return backoff.Permanent(errEmptyCompletion)
		}
		reply = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return reply, nil
}

// isTransient reports whether err is worth retrying: network failures,
// timeouts, rate limiting and 5xx responses.
func isTransient(err error) bool {
	if errors.Is(err, errEmptyCompletion) || errors.Is(err, context.Canceled) {
		return false
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == 0 {
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
