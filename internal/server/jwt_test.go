package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/jobboard/internal/config"
	"github.com/daniel/jobboard/internal/server/middleware"
)

func setupTestTokenService(_ *testing.T, expirationHours int) *TokenService {
	cfg := &config.JWTConfig{
		CandidateSecret: "candidate-secret-key-for-jwt-signing-32-bytes",
		CompanySecret:   "company-secret-key-for-jwt-signing-32-bytess",
		AdminSecret:     "admin-secret-key-for-jwt-signing-32-bytesxxx",
		ExpirationHours: expirationHours,
	}
	return NewTokenService(cfg)
}

func TestTokenService_Mint(t *testing.T) {
	service := setupTestTokenService(t, 24)
	id := uuid.New()

	token, err := service.Mint(middleware.KindCandidate, id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts separated by dots")
}

func TestTokenService_MintVerify_RoundTrip(t *testing.T) {
	service := setupTestTokenService(t, 24)

	kinds := []middleware.Kind{
		middleware.KindCandidate,
		middleware.KindCompany,
		middleware.KindAdministrator,
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			id := uuid.New()
			token, err := service.Mint(kind, id)
			require.NoError(t, err)

			got, err := service.Verify(kind, token)
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestTokenService_Verify_WrongKind(t *testing.T) {
	service := setupTestTokenService(t, 24)
	id := uuid.New()

	candidateToken, err := service.Mint(middleware.KindCandidate, id)
	require.NoError(t, err)

	_, err = service.Verify(middleware.KindCompany, candidateToken)
	assert.Error(t, err, "candidate token must not verify under the company secret")

	_, err = service.Verify(middleware.KindAdministrator, candidateToken)
	assert.Error(t, err, "candidate token must not verify under the admin secret")
}

func TestTokenService_Verify_SharedCompanySecret(t *testing.T) {
	// When the company secret falls back to the candidate secret, a
	// candidate token verifies under both kinds. The resolver's fixed
	// order is what keeps the identity deterministic.
	cfg := &config.JWTConfig{
		CandidateSecret: "shared-secret-key-for-jwt-signing-32-bytes-x",
		CompanySecret:   "shared-secret-key-for-jwt-signing-32-bytes-x",
		AdminSecret:     "admin-secret-key-for-jwt-signing-32-bytesxxx",
		ExpirationHours: 24,
	}
	service := NewTokenService(cfg)
	id := uuid.New()

	token, err := service.Mint(middleware.KindCandidate, id)
	require.NoError(t, err)

	got, err := service.Verify(middleware.KindCompany, token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	service := setupTestTokenService(t, 24)
	id := uuid.New()

	secret := []byte(service.config.CandidateSecret)
	claims := &Claims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = service.Verify(middleware.KindCandidate, tokenString)
	assert.Error(t, err)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	service := setupTestTokenService(t, 24)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJpZCI6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(middleware.KindCandidate, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	service := setupTestTokenService(t, 24)
	id := uuid.New()

	token, err := service.Mint(middleware.KindCandidate, id)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "XXXX"
	_, err = service.Verify(middleware.KindCandidate, tampered)
	assert.Error(t, err)
}

func TestTokenService_Verify_MissingAccountID(t *testing.T) {
	service := setupTestTokenService(t, 24)

	secret := []byte(service.config.CandidateSecret)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = service.Verify(middleware.KindCandidate, tokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no account id")
}

func TestTokenService_Verify_RejectsNoneAlgorithm(t *testing.T) {
	service := setupTestTokenService(t, 24)
	id := uuid.New()

	claims := &Claims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(middleware.KindCandidate, tokenString)
	assert.Error(t, err)
}
