package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
	"github.com/iho/finlab/internal/usecase/mocks"
)

func TestOnboardingUseCase_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOnboardingRepository(ctrl)
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.OnboardingProfile) error {
		if p.UserID != "user-1" || !p.UpdatedAt.Equal(now) {
			t.Fatalf("unexpected profile persisted: %+v", p)
		}
		if len(p.Interests) != 2 || p.TimeframeUnit != domain.TimeframeMonths {
			t.Fatalf("expected cleaned answers, got %+v", p)
		}
		return nil
	})

	uc := usecase.NewOnboardingUseCase(repo, fixedClock{now: now})

	_, err := uc.Save(context.Background(), "user-1", domain.OnboardingProfile{
		Interests:       []string{"budgeting", " ", "investing"},
		AppUsage:        "daily tracking",
		FinancialGoals:  "emergency fund",
		AchievementPlan: "save 10% monthly",
		Timeframe:       12,
		TimeframeUnit:   "Months",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnboardingUseCase_SaveRejectsIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewOnboardingUseCase(mocks.NewMockOnboardingRepository(ctrl), fixedClock{now: time.Now()})

	_, err := uc.Save(context.Background(), "user-1", domain.OnboardingProfile{Interests: []string{"budgeting"}})
	if !errors.Is(err, domain.ErrInvalidOnboarding) {
		t.Fatalf("expected ErrInvalidOnboarding, got %v", err)
	}
}

func TestOnboardingUseCase_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOnboardingRepository(ctrl)
	repo.EXPECT().GetByUser(gomock.Any(), "user-1").Return(nil, domain.ErrOnboardingNotFound)

	uc := usecase.NewOnboardingUseCase(repo, fixedClock{now: time.Now()})

	if _, err := uc.Get(context.Background(), "user-1"); !errors.Is(err, domain.ErrOnboardingNotFound) {
		t.Fatalf("expected ErrOnboardingNotFound, got %v", err)
	}
}
