// Package middleware provides HTTP middleware for authentication and
// authorization.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies which of the three account collections issued a token.
type Kind string

const (
	KindCandidate     Kind = "candidate"
	KindCompany       Kind = "company"
	KindAdministrator Kind = "administrator"
)

// Principal is the resolved caller identity attached to a request. It is
// built fresh per request and discarded when the request ends.
type Principal struct {
	Kind Kind
	ID   uuid.UUID
}

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for storing the resolved principal.
const principalKey ContextKey = "principal"

// Resolver classifies a bearer token into exactly one principal kind, or
// rejects it. ResolveKind is the narrow variant used by single-kind routes:
// it never falls through to the other kinds.
type Resolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
	ResolveKind(ctx context.Context, token string, kind Kind) (Principal, error)
}

// unauthorized writes the single externally-visible authentication failure.
// Every internal failure mode collapses to this response.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "authentication required",
	})
}

// bearerToken extracts the token from an Authorization header value.
// The Bearer prefix is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// Authenticate creates middleware that resolves a bearer token to any of
// the three principal kinds and adds the principal to the request context.
func Authenticate(resolver Resolver) func(http.Handler) http.Handler {
	return authenticate(resolver, "")
}

// RequireKind creates middleware that only accepts tokens of one principal
// kind. A valid token of another kind is rejected, not reinterpreted.
func RequireKind(resolver Resolver, kind Kind) func(http.Handler) http.Handler {
	return authenticate(resolver, kind)
}

func authenticate(resolver Resolver, kind Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			var principal Principal
			var err error
			if kind == "" {
				principal, err = resolver.Resolve(r.Context(), token)
			} else {
				principal, err = resolver.ResolveKind(r.Context(), token, kind)
			}
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the resolved principal from the request context.
func GetPrincipal(r *http.Request) (Principal, error) {
	principal, ok := r.Context().Value(principalKey).(Principal)
	if !ok {
		return Principal{}, fmt.Errorf("principal not found in request context")
	}
	return principal, nil
}

// WithPrincipal returns a context carrying the given principal (for testing
// purposes).
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
