package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"
)

// AuthMiddleware requires a valid bearer token and stores its user in the
// request context. Rejections carry a WWW-Authenticate challenge.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(code, message string) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="finlab", error="`+code+`"`)
				writeError(w, http.StatusUnauthorized, message)
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				reject("invalid_request", "missing authorization header")
				return
			}
			tokenString, ok := bearerToken(header)
			if !ok {
				reject("invalid_request", "authorization header must be 'Bearer <token>'")
				return
			}

			claims, err := jwtManager.Verify(tokenString)
			switch {
			case errors.Is(err, domain.ErrExpiredToken):
				reject("invalid_token", "token has expired")
				return
			case err != nil:
				reject("invalid_token", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), userFromClaims(claims))))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userFromClaims(claims *auth.Claims) *domain.User {
	return &domain.User{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
		Active:   true,
	}
}

// ContextWithUser returns a copy of ctx carrying user.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok && user != nil
}
