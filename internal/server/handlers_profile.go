package server

import (
	"net/http"

	"github.com/daniel/jobboard/internal/server/middleware"
)

// UpdateCandidateProfileRequest is the body for candidate profile edits.
// Skills are stored exactly as sent: order kept, duplicates kept, no case
// normalization. Matching against postings is exact.
type UpdateCandidateProfileRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Headline  string   `json:"headline" validate:"max=300"`
	Bio       string   `json:"bio" validate:"max=5000"`
	Skills    []string `json:"skills" validate:"dive,max=100"`
	ResumeURL string   `json:"resume_url" validate:"omitempty,url"`
}

// UpdateCompanyProfileRequest is the body for company profile edits.
type UpdateCompanyProfileRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

// handleGetMyProfile returns the authenticated candidate's profile.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if candidate == nil {
		s.failWith(w, &ErrNotFound{Entity: "candidate", ID: principal.ID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "candidate": candidate})
}

// handleUpdateMyProfile updates the authenticated candidate's profile and
// invalidates their cached recommendations, since the skill list feeds the
// scorer.
func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdateCandidateProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.db.UpdateCandidateProfile(r.Context(), principal.ID, req.Name, req.Headline, req.Bio, req.ResumeURL, req.Skills); err != nil {
		s.failWith(w, err)
		return
	}

	s.recommendations.Invalidate(r.Context(), principal.ID)

	candidate, err := s.db.GetCandidate(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "candidate": candidate})
}

// handleGetCompanyProfile returns the authenticated company's profile.
func (s *Server) handleGetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	company, err := s.db.GetCompany(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if company == nil {
		s.failWith(w, &ErrNotFound{Entity: "company", ID: principal.ID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "company": company})
}

// handleUpdateCompanyProfile updates the authenticated company's profile.
func (s *Server) handleUpdateCompanyProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdateCompanyProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.db.UpdateCompanyProfile(r.Context(), principal.ID, req.Name, req.Description, req.Website, req.LogoURL); err != nil {
		s.failWith(w, err)
		return
	}

	company, err := s.db.GetCompany(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "company": company})
}
