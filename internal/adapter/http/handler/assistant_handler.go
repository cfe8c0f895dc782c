package handler

import (
	"context"
	"net/http"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/usecase"
)

// AssistantService defines the behavior needed by AssistantHandler.
type AssistantService interface {
	Chat(ctx context.Context, input usecase.ChatInput) (string, error)
}

// AssistantHandler relays chat turns to the assistant.
type AssistantHandler struct {
	assistantUC AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantUC AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantUC: assistantUC}
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reply, err := h.assistantUC.Chat(r.Context(), req.ToUseCaseInput(user))
	if err != nil {
		writeDomainError(w, err, "assistant request failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{Reply: reply})
}
