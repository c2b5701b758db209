package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/moderation"
	"github.com/daniel/jobboard/internal/server/middleware"
)

// ApplyRequest is the optional body for applying to a posting.
type ApplyRequest struct {
	CoverNote string `json:"cover_note" validate:"max=5000"`
}

// handleApply creates an application from the authenticated candidate to an
// eligible posting. The (candidate, job) uniqueness is enforced by the
// database, so a concurrent double-apply surfaces as a conflict rather than
// a duplicate row.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req ApplyRequest
	if r.ContentLength > 0 {
		if !s.decodeBody(w, r, &req) {
			return
		}
	}

	posting, err := s.db.GetJobPosting(r.Context(), jobID)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if posting == nil || posting.Status != string(moderation.StatusActive) || !posting.Visible {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: jobID})
		return
	}

	application, err := s.db.CreateApplication(r.Context(), principal.ID, jobID, posting.CompanyID, req.CoverNote)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success":     true,
		"application": application,
	})
}

// handleListMyApplications lists the authenticated candidate's applications.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	applications, err := s.db.ListApplicationsByCandidate(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"applications": applications,
		"count":        len(applications),
	})
}

// handleWithdrawApplication deletes one of the candidate's own applications.
func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid application id")
		return
	}

	application, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if application == nil || application.CandidateID != principal.ID {
		s.failWith(w, &ErrNotFound{Entity: "application", ID: id})
		return
	}

	if err := s.db.DeleteApplication(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "application withdrawn"})
}

// handleListJobApplications lists applicants for one of the authenticated
// company's postings.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	posting := s.getOwnedJob(w, r, principal.ID)
	if posting == nil {
		return
	}

	applications, err := s.db.ListApplicationsByJob(r.Context(), posting.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"applications": applications,
		"count":        len(applications),
	})
}
