package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/finlab/internal/domain"
)

const (
	issuer   = "finlab"
	audience = "finlab-api"
	leeway   = 30 * time.Second
)

// Claims carries the user a token was issued to. The user ID is the
// registered subject.
type Claims struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 bearer tokens for the API.
type JWTManager struct {
	now           func() time.Time
	secretKey     []byte
	tokenDuration time.Duration
	parser        *jwt.Parser
}

func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	m := &JWTManager{
		now:           time.Now,
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

// TokenDuration reports how long issued tokens stay valid.
func (m *JWTManager) TokenDuration() time.Duration {
	return m.tokenDuration
}

func (m *JWTManager) Generate(user *domain.User) (string, error) {
	now := m.now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

// Verify returns the claims of a valid token. Expired tokens give
// domain.ErrExpiredToken and every other failure domain.ErrInvalidToken.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
