package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testResolver is a test implementation of Resolver for unit tests.
type testResolver struct {
	tokens map[string]Principal
}

func newTestResolver() *testResolver {
	return &testResolver{tokens: make(map[string]Principal)}
}

func (r *testResolver) addToken(token string, p Principal) {
	r.tokens[token] = p
}

func (r *testResolver) Resolve(_ context.Context, token string) (Principal, error) {
	p, ok := r.tokens[token]
	if !ok {
		return Principal{}, fmt.Errorf("invalid token")
	}
	return p, nil
}

func (r *testResolver) ResolveKind(_ context.Context, token string, kind Kind) (Principal, error) {
	p, ok := r.tokens[token]
	if !ok || p.Kind != kind {
		return Principal{}, fmt.Errorf("invalid token")
	}
	return p, nil
}

func TestAuthenticate_ValidToken(t *testing.T) {
	resolver := newTestResolver()
	candidateID := uuid.New()
	resolver.addToken("candidate-token", Principal{Kind: KindCandidate, ID: candidateID})

	handlerCalled := false
	var got Principal
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		principal, err := GetPrincipal(r)
		require.NoError(t, err)
		got = principal
		w.WriteHeader(http.StatusOK)
	})

	wrapped := Authenticate(resolver)(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer candidate-token")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.True(t, handlerCalled, "handler should be called")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, KindCandidate, got.Kind)
	assert.Equal(t, candidateID, got.ID)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	resolver := newTestResolver()

	handlerCalled := false
	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
	})

	wrapped := Authenticate(resolver)(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.False(t, handlerCalled, "handler should not be called")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	resolver := newTestResolver()
	resolver.addToken("token123", Principal{Kind: KindCandidate, ID: uuid.New()})

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing Bearer prefix", authHeader: "token123"},
		{name: "empty token", authHeader: "Bearer "},
		{name: "only Bearer", authHeader: "Bearer"},
		{name: "wrong scheme", authHeader: "Basic token123"},
		{name: "extra parts", authHeader: "Bearer token123 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				t.Fatal("handler should not be called")
			})
			wrapped := Authenticate(resolver)(handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", tt.authHeader)
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthenticate_CaseInsensitiveBearer(t *testing.T) {
	resolver := newTestResolver()
	resolver.addToken("token123", Principal{Kind: KindCompany, ID: uuid.New()})

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Authenticate(resolver)(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "bEaRer token123")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireKind_AcceptsMatchingKind(t *testing.T) {
	resolver := newTestResolver()
	companyID := uuid.New()
	resolver.addToken("company-token", Principal{Kind: KindCompany, ID: companyID})

	var got Principal
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := GetPrincipal(r)
		require.NoError(t, err)
		got = principal
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RequireKind(resolver, KindCompany)(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer company-token")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, companyID, got.ID)
}

func TestRequireKind_RejectsOtherKinds(t *testing.T) {
	resolver := newTestResolver()
	resolver.addToken("candidate-token", Principal{Kind: KindCandidate, ID: uuid.New()})

	handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not be called")
	})
	wrapped := RequireKind(resolver, KindAdministrator)(handler)

	// A perfectly valid candidate token must not pass an admin-only gate.
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer candidate-token")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPrincipal_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	_, err := GetPrincipal(req)
	assert.Error(t, err)
}
