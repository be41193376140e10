// Package auth verifies the bearer tokens the host's identity service
// issues. Token creation, user registration, and session management are
// outside this application; the only auth surface here is validating a
// token signed with the shared secret and extracting the user ID.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/config"
)

// Token validation errors
var (
	// ErrInvalidToken is returned when a token fails signature or claims validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the token claims this application cares about.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// JWTService validates bearer tokens.
type JWTService interface {
	// ValidateToken verifies the token signature and expiry and returns
	// the embedded claims. Returns ErrExpiredToken or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Verify interface compliance at compile time
var _ JWTService = (*hmacJWTService)(nil)

// hmacJWTService validates tokens signed with the shared HMAC secret.
type hmacJWTService struct {
	secret []byte
}

// NewJWTService creates a JWTService from the auth configuration.
func NewJWTService(cfg config.AuthConfig) JWTService {
	return &hmacJWTService{secret: []byte(cfg.JWTSecret)}
}

// ValidateToken implements JWTService.ValidateToken.
func (s *hmacJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*Claims, error) {
	var registered jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(
		tokenString,
		&registered,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(time.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, RegisteredClaims: registered}, nil
}
