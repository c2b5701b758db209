// Package config provides configuration loading for the job board server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds the signing secrets and expiry used for bearer tokens.
// Each principal kind is signed with its own secret; the company secret
// falls back to the candidate secret when no distinct one is configured.
type JWTConfig struct {
	CandidateSecret string
	CompanySecret   string
	AdminSecret     string
	ExpirationHours int
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required), COMPANY_JWT_SECRET (default: JWT_SECRET),
// ADMIN_JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	candidateSecret := os.Getenv("JWT_SECRET")
	if candidateSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	companySecret := os.Getenv("COMPANY_JWT_SECRET")
	if companySecret == "" {
		// Compatibility fallback: deployments that never configured a
		// distinct company secret sign company tokens with JWT_SECRET.
		companySecret = candidateSecret
	}

	adminSecret := os.Getenv("ADMIN_JWT_SECRET")
	if adminSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	config := &JWTConfig{
		CandidateSecret: candidateSecret,
		CompanySecret:   companySecret,
		AdminSecret:     adminSecret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.CandidateSecret == "" || c.AdminSecret == "" {
		return fmt.Errorf("JWT secrets cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
