package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finlab/internal/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1718000000,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]string{"role": "assistant", "content": content},
		}},
	})
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": http.StatusText(status), "type": "server_error"},
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:       srv.URL + "/v1",
		APIKey:        "test-key",
		Model:         "test-model",
		Timeout:       2 * time.Second,
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, zerolog.Nop())
}

func TestCompleteSendsConversation(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, "  Spend less on food.  ")
	}, nil)

	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: "FINANCIAL SUMMARY:"},
		{Role: domain.ChatRoleUser, Content: "How am I doing?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spend less on food.", reply)

	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "How am I doing?", got.Messages[1].Content)
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeError(w, http.StatusServiceUnavailable)
			return
		}
		writeCompletion(w, "ok")
	}, nil)

	reply, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusBadRequest)
	}, nil)

	_, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteEmptyReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "   ")
	}, nil)

	_, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}})
	require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
}

func TestCompleteOpensBreaker(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusInternalServerError)
	}, func(cfg *Config) {
		cfg.MaxRetries = 0
		cfg.BreakerFailures = 2
		cfg.BreakerCooldown = time.Minute
	})

	msgs := []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "hi"}}
	for i := 0; i < 2; i++ {
		_, err := client.Complete(context.Background(), msgs)
		require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
	}

	_, err := client.Complete(context.Background(), msgs)
	require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must short-circuit the third call")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(errors.New("connection reset")))
	assert.False(t, isTransient(errEmptyCompletion))
	assert.False(t, isTransient(context.Canceled))
}
