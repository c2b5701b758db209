package server

import (
	"net/http"

	"github.com/daniel/jobboard/internal/db"
	"github.com/daniel/jobboard/internal/recommend"
	"github.com/daniel/jobboard/internal/server/middleware"
)

// eligiblePageSize is how many postings each page of the scoring scan
// loads. The scan itself covers every eligible posting.
var eligiblePageSize = 200

// recommendedJob flattens a posting with its match score for the wire.
type recommendedJob struct {
	db.JobPosting
	MatchScore int `json:"matchScore"`
}

// handleRecommendations returns ranked postings for the authenticated
// candidate. Results are cached per candidate for a short TTL; a cache
// fault degrades to recomputation.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var cached []recommendedJob
	if s.recommendations.Get(r.Context(), principal.ID, &cached) {
		s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "jobs": cached})
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	// A missing profile is scored like an empty skill list, never an error.
	var skills []string
	if candidate != nil {
		skills = candidate.Skills
	}

	// Scoring ranges over every eligible posting, loaded page by page.
	var eligible []db.JobPosting
	for offset := 0; ; offset += eligiblePageSize {
		page, err := s.db.ListEligibleJobs(r.Context(), eligiblePageSize, offset)
		if err != nil {
			s.failWith(w, err)
			return
		}
		eligible = append(eligible, page...)
		if len(page) < eligiblePageSize {
			break
		}
	}

	matches := recommend.Rank(skills, eligible)
	jobs := make([]recommendedJob, 0, len(matches))
	for _, m := range matches {
		jobs = append(jobs, recommendedJob{JobPosting: m.Posting, MatchScore: m.MatchScore})
	}

	s.recommendations.Set(r.Context(), principal.ID, jobs)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
}
