package middleware

import (
	"errors"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the JWT payload: only the user id plus the registered times.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens with one process-wide secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var ErrEmptySecret = errors.New("jwt secret is empty")

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for userID that expires after the configured TTL.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	claims := &Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify returns the claims of a valid token. Every failure (malformed, bad
// signature, wrong algorithm, expired, empty id) is the same Unauthorized error.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || claims.ID == "" {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
