package usecase

import (
	"context"
	"strings"

	"github.com/iho/finlab/internal/domain"
)

// OnboardingUseCase stores the first-run questionnaire.
type OnboardingUseCase struct {
	repo  OnboardingRepository
	clock Clock
}

// NewOnboardingUseCase creates a new OnboardingUseCase.
func NewOnboardingUseCase(repo OnboardingRepository, clock Clock) *OnboardingUseCase {
	return &OnboardingUseCase{repo: repo, clock: clock}
}

// Save validates and upserts the user's answers.
func (uc *OnboardingUseCase) Save(ctx context.Context, userID string, profile domain.OnboardingProfile) (*domain.OnboardingProfile, error) {
	profile.UserID = userID
	profile.AppUsage = strings.TrimSpace(profile.AppUsage)
	profile.FinancialGoals = strings.TrimSpace(profile.FinancialGoals)
	profile.AchievementPlan = strings.TrimSpace(profile.AchievementPlan)
	profile.TimeframeUnit = domain.TimeframeUnit(strings.ToLower(string(profile.TimeframeUnit)))

	interests := make([]string, 0, len(profile.Interests))
	for _, i := range profile.Interests {
		if i = strings.TrimSpace(i); i != "" {
			interests = append(interests, i)
		}
	}
	profile.Interests = interests

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	profile.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.repo.Upsert(ctx, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Get returns the user's answers or domain.ErrOnboardingNotFound.
func (uc *OnboardingUseCase) Get(ctx context.Context, userID string) (*domain.OnboardingProfile, error) {
	return uc.repo.GetByUser(ctx, userID)
}
