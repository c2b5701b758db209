package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/db"
	"github.com/daniel/jobboard/internal/moderation"
	"github.com/daniel/jobboard/internal/server/middleware"
)

// JobPostingRequest is the body for creating or updating a posting.
type JobPostingRequest struct {
	Title           string     `json:"title" validate:"required,min=1,max=300"`
	Description     string     `json:"description" validate:"required"`
	Location        string     `json:"location" validate:"max=200"`
	EmploymentType  string     `json:"employment_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	RequiredSkills  []string   `json:"required_skills"`
	PreferredSkills []string   `json:"preferred_skills"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// UpdateJobStatusRequest is the admin moderation body. The status value is
// validated against the state machine, not here.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// handleListJobs lists publicly eligible postings (active and visible).
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	postings, err := s.db.ListEligibleJobs(r.Context(), limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    postings,
		"count":   len(postings),
	})
}

// handleGetJob retrieves one posting; non-eligible postings are hidden from
// the public as if they did not exist.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if posting == nil || posting.Status != string(moderation.StatusActive) || !posting.Visible {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "job": posting})
}

// handleCreateJob creates a posting for the authenticated company. New
// postings enter the moderation queue as pending and invisible.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req JobPostingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	posting, err := s.db.CreateJobPosting(r.Context(), &db.JobPostingCreateInput{
		CompanyID:       principal.ID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		EmploymentType:  req.EmploymentType,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"success": true, "job": posting})
}

// handleListCompanyJobs lists all of the authenticated company's postings,
// regardless of status.
func (s *Server) handleListCompanyJobs(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	postings, err := s.db.ListJobsByCompany(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    postings,
		"count":   len(postings),
	})
}

// getOwnedJob loads a posting and checks the caller owns it. Ownership
// failures report not-found so other companies' posting IDs are not
// confirmed.
func (s *Server) getOwnedJob(w http.ResponseWriter, r *http.Request, companyID uuid.UUID) *db.JobPosting {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return nil
	}

	posting, err := s.db.GetJobPosting(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return nil
	}
	if posting == nil || posting.CompanyID != companyID {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: id})
		return nil
	}
	return posting
}

// handleUpdateCompanyJob updates the editable fields of an owned posting.
func (s *Server) handleUpdateCompanyJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	posting := s.getOwnedJob(w, r, principal.ID)
	if posting == nil {
		return
	}

	var req JobPostingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	updated, err := s.db.UpdateJobPosting(r.Context(), posting.ID, &db.JobPostingCreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		EmploymentType:  req.EmploymentType,
		RequiredSkills:  req.RequiredSkills,
		PreferredSkills: req.PreferredSkills,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}
	if updated == nil {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: posting.ID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "job": updated})
}

// handleDeleteCompanyJob removes an owned posting and its applications.
func (s *Server) handleDeleteCompanyJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	posting := s.getOwnedJob(w, r, principal.ID)
	if posting == nil {
		return
	}

	if err := s.db.DeleteJobPosting(r.Context(), posting.ID); err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "job deleted"})
}

// handleAdminListJobs lists postings across companies with an optional
// status filter.
func (s *Server) handleAdminListJobs(w http.ResponseWriter, r *http.Request) {
	opts := db.ListJobsOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  parseQueryInt(r, "limit", 50, 100),
		Offset: parseQueryInt(r, "offset", 0, 0),
	}

	postings, total, err := s.db.ListJobs(r.Context(), opts)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    postings,
		"count":   total,
		"limit":   opts.Limit,
		"offset":  opts.Offset,
	})
}

// handleUpdateJobStatus applies an admin moderation decision. The approved
// alias is normalized to active before persisting, and visibility always
// follows the stored status.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req UpdateJobStatusRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	target, err := moderation.ParseTarget(req.Status)
	if err != nil {
		s.failWith(w, &ErrInvalidStatus{Value: req.Status})
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if posting == nil {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: id})
		return
	}

	if !moderation.IsTransitionAllowed(moderation.Status(posting.Status), target) {
		s.failWith(w, &ErrInvalidStatus{Value: req.Status})
		return
	}

	updated, err := s.db.UpdateJobStatus(r.Context(), id, string(target), moderation.VisibleFor(target))
	if err != nil {
		s.failWith(w, err)
		return
	}
	if updated == nil {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: id})
		return
	}

	s.audit.Record(r.Context(), principal.ID, "job.status", "job", id, posting.Status+" -> "+updated.Status)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"job":     updated,
		"status":  updated.Status,
	})
}

// handleAdminDeleteJob removes any posting; applications cascade away with
// it.
func (s *Server) handleAdminDeleteJob(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	posting, err := s.db.GetJobPosting(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if posting == nil {
		s.failWith(w, &ErrNotFound{Entity: "job", ID: id})
		return
	}

	if err := s.db.DeleteJobPosting(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "job.delete", "job", id, posting.Title)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "job deleted"})
}
