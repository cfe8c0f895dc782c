package handler

import (
	"context"
	"net/http"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
)

// OnboardingService defines the behavior needed by OnboardingHandler.
type OnboardingService interface {
	Save(ctx context.Context, userID string, profile domain.OnboardingProfile) (*domain.OnboardingProfile, error)
	Get(ctx context.Context, userID string) (*domain.OnboardingProfile, error)
}

// OnboardingHandler serves the questionnaire answers.
type OnboardingHandler struct {
	onboardingUC OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingUC OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingUC: onboardingUC}
}

func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.onboardingUC.Get(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "failed to get onboarding")
		return
	}

	writeJSON(w, http.StatusOK, dto.OnboardingFromDomain(profile))
}

// Save replaces the stored answers.
func (h *OnboardingHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.OnboardingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.onboardingUC.Save(r.Context(), user.ID, req.ToDomain())
	if err != nil {
		writeDomainError(w, err, "failed to save onboarding")
		return
	}

	writeJSON(w, http.StatusOK, dto.OnboardingFromDomain(profile))
}
