package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/server/middleware"
)

// handleAdminMe returns the authenticated administrator's account.
func (s *Server) handleAdminMe(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	admin, err := s.db.GetAdmin(r.Context(), principal.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if admin == nil {
		s.failWith(w, &ErrNotFound{Entity: "administrator", ID: principal.ID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "admin": admin})
}

// handleAdminListCandidates lists candidate accounts for moderation.
func (s *Server) handleAdminListCandidates(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	candidates, err := s.db.ListCandidates(r.Context(), limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":    true,
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// handleAdminDeleteCandidate removes a candidate account; their
// applications cascade away.
func (s *Server) handleAdminDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if candidate == nil {
		s.failWith(w, &ErrNotFound{Entity: "candidate", ID: id})
		return
	}

	if err := s.db.DeleteCandidate(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "candidate.delete", "candidate", id, candidate.Email)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "candidate deleted"})
}

// handleAdminListCompanies lists company accounts for moderation.
func (s *Server) handleAdminListCompanies(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	companies, err := s.db.ListCompanies(r.Context(), limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"companies": companies,
		"count":     len(companies),
	})
}

// handleAdminDeleteCompany removes a company; its postings and their
// applications cascade away.
func (s *Server) handleAdminDeleteCompany(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid company id")
		return
	}

	company, err := s.db.GetCompany(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if company == nil {
		s.failWith(w, &ErrNotFound{Entity: "company", ID: id})
		return
	}

	if err := s.db.DeleteCompany(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "company.delete", "company", id, company.Email)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "company deleted"})
}

// handleAdminActivity returns the most recent admin activity entries.
func (s *Server) handleAdminActivity(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 100, 500)

	events, err := s.db.ListRecentActivity(r.Context(), limit)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"activity": events,
		"count":    len(events),
	})
}
