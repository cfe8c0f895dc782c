package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/postgres/generated"
)

// OnboardingRepository stores questionnaire answers as a JSONB document.
type OnboardingRepository struct {
	queries *generated.Queries
}

// NewOnboardingRepository creates a new OnboardingRepository.
func NewOnboardingRepository(pool *pgxpool.Pool) *OnboardingRepository {
	return newOnboardingRepository(pool)
}

func newOnboardingRepository(db generated.DBTX) *OnboardingRepository {
	return &OnboardingRepository{queries: generated.New(db)}
}

// Upsert replaces the user's answers.
func (r *OnboardingRepository) Upsert(ctx context.Context, profile *domain.OnboardingProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode onboarding profile: %w", err)
	}

	return r.queries.UpsertOnboarding(ctx, generated.UpsertOnboardingParams{
		UserID:    profile.UserID,
		Profile:   doc,
		UpdatedAt: timeToPgTimestamptz(profile.UpdatedAt),
	})
}

// GetByUser returns the stored answers or domain.ErrOnboardingNotFound.
func (r *OnboardingRepository) GetByUser(ctx context.Context, userID string) (*domain.OnboardingProfile, error) {
	row, err := r.queries.GetOnboardingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOnboardingNotFound
		}
		return nil, err
	}

	var profile domain.OnboardingProfile
	if err := json.Unmarshal(row.Profile, &profile); err != nil {
		return nil, fmt.Errorf("decode onboarding profile: %w", err)
	}
	profile.UserID = row.UserID
	profile.UpdatedAt = row.UpdatedAt.Time

	return &profile, nil
}
