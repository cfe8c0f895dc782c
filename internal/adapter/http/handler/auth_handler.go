package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
	TokenDuration() time.Duration
}

// AuthHandler handles sign-up, login and the current-user endpoint.
type AuthHandler struct {
	users  UserService
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users UserService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, now: time.Now}
}

// Register creates an account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to register")
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "invalid credentials")
		return
	}

	issuedAt := h.now()
	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: issuedAt.Add(h.tokens.TokenDuration()).UTC(),
		User:      dto.UserFromDomain(user),
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), current.ID)
	if err != nil {
		writeDomainError(w, err, "failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
