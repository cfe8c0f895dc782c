package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/postgres/generated"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	queries *generated.Queries
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return newUserRepository(pool)
}

func newUserRepository(db generated.DBTX) *UserRepository {
	return &UserRepository{queries: generated.New(db)}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Role:           string(user.Role),
		Active:         user.Active,
		CreatedAt:      timeToPgTimestamptz(user.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(user.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rowToUser(row), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rowToUser(row), nil
}
