package server

import (
	"net/http"

	"github.com/daniel/jobboard/internal/server/middleware"
)

// RegisterRequest is the body for candidate and company registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body for every login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the body for candidate password changes.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// handleRegisterCandidate creates a candidate account and returns a token.
func (s *Server) handleRegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, err := s.accounts.RegisterCandidate(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.failWith(w, err)
		return
	}

	token, err := s.tokens.Mint(middleware.KindCandidate, candidate.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success":   true,
		"token":     token,
		"candidate": candidate,
	})
}

// handleLoginCandidate authenticates a candidate and returns a token.
func (s *Server) handleLoginCandidate(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, err := s.accounts.LoginCandidate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.failWith(w, err)
		return
	}

	token, err := s.tokens.Mint(middleware.KindCandidate, candidate.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"token":     token,
		"candidate": candidate,
	})
}

// handleRegisterCompany creates a company account and returns a token.
func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	company, err := s.accounts.RegisterCompany(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.failWith(w, err)
		return
	}

	token, err := s.tokens.Mint(middleware.KindCompany, company.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   token,
		"company": company,
	})
}

// handleLoginCompany authenticates a company and returns a token.
func (s *Server) handleLoginCompany(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	company, err := s.accounts.LoginCompany(r.Context(), req.Email, req.Password)
	if err != nil {
		s.failWith(w, err)
		return
	}

	token, err := s.tokens.Mint(middleware.KindCompany, company.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"company": company,
	})
}

// handleLoginAdmin authenticates an administrator and returns a token.
func (s *Server) handleLoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	admin, err := s.accounts.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		s.failWith(w, err)
		return
	}

	token, err := s.tokens.Mint(middleware.KindAdministrator, admin.ID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"admin":   admin,
	})
}

// handleUpdatePassword changes the authenticated candidate's password.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req UpdatePasswordRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	if err := s.accounts.UpdateCandidatePassword(r.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password updated successfully",
	})
}
