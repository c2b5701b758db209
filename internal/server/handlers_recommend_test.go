package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/daniel/jobboard/internal/db"
	"github.com/daniel/jobboard/internal/server/middleware"
)

// fakeRecommendationCache is an in-memory recommendationCache that counts
// traffic so tests can tell a cache hit from a recompute.
type fakeRecommendationCache struct {
	payloads      map[uuid.UUID][]byte
	hits          int
	sets          int
	invalidations int
}

func newFakeRecommendationCache() *fakeRecommendationCache {
	return &fakeRecommendationCache{payloads: make(map[uuid.UUID][]byte)}
}

func (f *fakeRecommendationCache) Get(_ context.Context, candidateID uuid.UUID, dest any) bool {
	data, ok := f.payloads[candidateID]
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	f.hits++
	return true
}

func (f *fakeRecommendationCache) Set(_ context.Context, candidateID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	f.payloads[candidateID] = data
	f.sets++
}

func (f *fakeRecommendationCache) Invalidate(_ context.Context, candidateID uuid.UUID) {
	delete(f.payloads, candidateID)
	f.invalidations++
}

func TestHandleRecommendations_CacheHit(t *testing.T) {
	candidateID := uuid.New()
	jobID := uuid.New()

	fake := newFakeRecommendationCache()
	fake.Set(context.Background(), candidateID, []recommendedJob{
		{JobPosting: db.JobPosting{ID: jobID, Title: "Backend Engineer"}, MatchScore: 80},
	})

	// db is left nil: a cached list must be served without touching storage.
	s := &Server{logger: zaptest.NewLogger(t), recommendations: fake}

	req := requestAs(t, middleware.Principal{Kind: middleware.KindCandidate, ID: candidateID},
		http.MethodGet, "/recommendations", nil)
	w := httptest.NewRecorder()
	s.handleRecommendations(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, true, resp["success"])

	jobs, ok := resp["jobs"].([]any)
	require.True(t, ok)
	require.Len(t, jobs, 1)
	job := jobs[0].(map[string]any)
	assert.Equal(t, jobID.String(), job["id"])
	assert.Equal(t, float64(80), job["matchScore"])

	assert.Equal(t, 1, fake.hits)
	assert.Equal(t, 1, fake.sets, "a hit must not rewrite the cache")
}

func TestHandleRecommendations_Unauthenticated(t *testing.T) {
	s := &Server{logger: zaptest.NewLogger(t), recommendations: newFakeRecommendationCache()}

	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	w := httptest.NewRecorder()
	s.handleRecommendations(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
