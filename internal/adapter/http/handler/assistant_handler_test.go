package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

type assistantServiceStub struct {
	chatFn func(ctx context.Context, input usecase.ChatInput) (string, error)
}

func (s *assistantServiceStub) Chat(ctx context.Context, input usecase.ChatInput) (string, error) {
	return s.chatFn(ctx, input)
}

func TestAssistantHandler_Chat(t *testing.T) {
	var captured usecase.ChatInput
	h := NewAssistantHandler(&assistantServiceStub{
		chatFn: func(ctx context.Context, input usecase.ChatInput) (string, error) {
			captured = input
			return "Spend less on food.", nil
		},
	})

	body := `{"message":"How am I doing?","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`
	rec := httptest.NewRecorder()
	h.Chat(rec, withUser(httptest.NewRequest(http.MethodPost, "/assistant/chat", bytes.NewBufferString(body)), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "u1" || captured.Username != "asha" || len(captured.History) != 2 {
		t.Fatalf("unexpected chat input %+v", captured)
	}

	var resp dto.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reply != "Spend less on food." {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
}

func TestAssistantHandler_Chat_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty message", domain.ErrEmptyMessage, http.StatusBadRequest},
		{"upstream down", fmt.Errorf("%w: 503", domain.ErrAssistantUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAssistantHandler(&assistantServiceStub{
				chatFn: func(ctx context.Context, input usecase.ChatInput) (string, error) {
					return "", tt.err
				},
			})

			rec := httptest.NewRecorder()
			h.Chat(rec, withUser(httptest.NewRequest(http.MethodPost, "/assistant/chat", bytes.NewBufferString(`{"message":""}`)), "u1"))
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Message == "" {
				t.Fatalf("expected error details, got %+v", resp)
			}
		})
	}
}
