package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

type userServiceStub struct {
	registerFn     func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	getFn          func(ctx context.Context, id string) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.authenticateFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

type tokenIssuerStub struct {
	token string
	err   error
}

func (s tokenIssuerStub) Generate(*domain.User) (string, error) { return s.token, s.err }
func (s tokenIssuerStub) TokenDuration() time.Duration          { return time.Hour }

func TestAuthHandler_Register(t *testing.T) {
	var captured usecase.RegisterInput
	h := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			captured = input
			return &domain.User{ID: "u1", Username: input.Username, Email: input.Email, Role: domain.RoleUser}, nil
		},
	}, tokenIssuerStub{})

	body, _ := json.Marshal(dto.RegisterRequest{Username: "asha", Email: "asha@example.com", Password: "Secret123"})
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "asha@example.com" || captured.Password != "Secret123" {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "u1" || resp.Username != "asha" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}, tokenIssuerStub{})

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"email":"a@b.co"}`)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			if input.Password != "Secret123" {
				return nil, domain.ErrUnauthorized
			}
			return &domain.User{ID: "u1", Email: input.Email, Role: domain.RoleUser}, nil
		},
	}, tokenIssuerStub{token: "signed"})
	issued := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return issued }

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@b.co","password":"Secret123"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token != "signed" || !resp.ExpiresAt.Equal(issued.Add(time.Hour)) || resp.User.ID != "u1" {
		t.Fatalf("unexpected login response %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@b.co","password":"nope"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_TokenFailure(t *testing.T) {
	h := NewAuthHandler(&userServiceStub{
		authenticateFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return &domain.User{ID: "u1"}, nil
		},
	}, tokenIssuerStub{err: errors.New("sign failed")})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&userServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: id, Username: "asha"}, nil
		},
	}, tokenIssuerStub{})

	rec := httptest.NewRecorder()
	h.Me(rec, withUser(httptest.NewRequest(http.MethodGet, "/me", nil), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Me(rec, withUser(httptest.NewRequest(http.MethodGet, "/me", nil), "gone"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
