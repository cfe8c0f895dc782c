package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/finlab/internal/domain"
)

// UserUseCase handles registration and login.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	clock    Clock
	metrics  Metrics
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, clock Clock, metrics Metrics) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
		clock:    clock,
		metrics:  metrics,
	}
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.clock.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       strings.TrimSpace(input.Username),
		Email:          email,
		HashedPassword: string(hashedPassword),
		Role:           domain.RoleUser,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate checks credentials. Unknown emails, inactive accounts and
// wrong passwords all give ErrUnauthorized, and unknown emails still pay for
// a bcrypt comparison so response time does not reveal registered emails.
// Storage failures are returned as-is.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash := decoyHash()
	if user != nil {
		hash = []byte(user.HashedPassword)
	}
	match := bcrypt.CompareHashAndPassword(hash, []byte(input.Password)) == nil

	if user == nil || !user.Active || !match {
		uc.metrics.AuthAttempt("failure")
		return nil, domain.ErrUnauthorized
	}

	uc.metrics.AuthAttempt("success")
	user.HashedPassword = ""
	return user, nil
}

// GetUser retrieves a user by ID without the password hash.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var decoyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("finlab-decoy-password"), bcrypt.DefaultCost)
	return hash
})
