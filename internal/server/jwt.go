// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/config"
	"github.com/daniel/jobboard/internal/server/middleware"
)

// Claims represents JWT claims with the canonical account identifier.
// Every principal kind mints the same claim shape; which secret verifies
// the signature is what determines the kind.
type Claims struct {
	ID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies bearer tokens against the per-kind
// signing secrets.
type TokenService struct {
	config *config.JWTConfig
}

// NewTokenService creates a token service with the given configuration.
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{config: cfg}
}

func (s *TokenService) secretFor(kind middleware.Kind) ([]byte, error) {
	switch kind {
	case middleware.KindCandidate:
		return []byte(s.config.CandidateSecret), nil
	case middleware.KindCompany:
		return []byte(s.config.CompanySecret), nil
	case middleware.KindAdministrator:
		return []byte(s.config.AdminSecret), nil
	}
	return nil, fmt.Errorf("unknown principal kind: %q", kind)
}

// Mint generates a token for the given account under the kind's secret.
func (s *TokenService) Mint(kind middleware.Kind, id uuid.UUID) (string, error) {
	secret, err := s.secretFor(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates a token against exactly one kind's secret and returns
// the embedded account ID. A token signed for another kind fails here;
// callers treat that as "not this kind", not as an error condition worth
// distinguishing.
func (s *TokenService) Verify(kind middleware.Kind, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("token string is empty")
	}

	secret, err := s.secretFor(kind)
	if err != nil {
		return uuid.Nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("token is not valid")
	}
	if claims.ID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("token carries no account id")
	}

	return claims.ID, nil
}
