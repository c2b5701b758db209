package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/server/middleware"
)

// BlogPostRequest is the body for creating or updating a blog post.
type BlogPostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=300"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

// ResourceRequest is the body for creating or updating a career resource.
type ResourceRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=300"`
	URL       string `json:"url" validate:"required,url"`
	Summary   string `json:"summary" validate:"max=2000"`
	Category  string `json:"category" validate:"max=100"`
	Published bool   `json:"published"`
}

// handleListBlogPosts lists published posts for the public site.
func (s *Server) handleListBlogPosts(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 20, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	posts, err := s.db.ListBlogPosts(r.Context(), true, limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "posts": posts, "count": len(posts)})
}

// handleGetBlogPost returns one published post.
func (s *Server) handleGetBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := s.db.GetBlogPost(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if post == nil || !post.Published {
		s.failWith(w, &ErrNotFound{Entity: "post", ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

// handleListResources lists published career resources.
func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	resources, err := s.db.ListResources(r.Context(), true, limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "resources": resources, "count": len(resources)})
}

// handleAdminListBlogPosts lists all posts, drafts included.
func (s *Server) handleAdminListBlogPosts(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	posts, err := s.db.ListBlogPosts(r.Context(), false, limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "posts": posts, "count": len(posts)})
}

// handleAdminCreateBlogPost creates a post authored by the caller.
func (s *Server) handleAdminCreateBlogPost(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req BlogPostRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	post, err := s.db.CreateBlogPost(r.Context(), principal.ID, req.Title, req.Body, req.Published)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "post.create", "post", post.ID, post.Title)

	s.jsonResponse(w, http.StatusCreated, map[string]any{"success": true, "post": post})
}

// handleAdminUpdateBlogPost updates a post.
func (s *Server) handleAdminUpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req BlogPostRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	post, err := s.db.UpdateBlogPost(r.Context(), id, req.Title, req.Body, req.Published)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if post == nil {
		s.failWith(w, &ErrNotFound{Entity: "post", ID: id})
		return
	}

	s.audit.Record(r.Context(), principal.ID, "post.update", "post", id, post.Title)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

// handleAdminDeleteBlogPost removes a post.
func (s *Server) handleAdminDeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := s.db.GetBlogPost(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if post == nil {
		s.failWith(w, &ErrNotFound{Entity: "post", ID: id})
		return
	}

	if err := s.db.DeleteBlogPost(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "post.delete", "post", id, post.Title)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "post deleted"})
}

// handleAdminListResources lists all resources, unpublished included.
func (s *Server) handleAdminListResources(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	resources, err := s.db.ListResources(r.Context(), false, limit, offset)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "resources": resources, "count": len(resources)})
}

// handleAdminCreateResource creates a career resource.
func (s *Server) handleAdminCreateResource(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req ResourceRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	resource, err := s.db.CreateResource(r.Context(), req.Title, req.URL, req.Summary, req.Category, req.Published)
	if err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "resource.create", "resource", resource.ID, resource.Title)

	s.jsonResponse(w, http.StatusCreated, map[string]any{"success": true, "resource": resource})
}

// handleAdminUpdateResource updates a career resource.
func (s *Server) handleAdminUpdateResource(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resource id")
		return
	}

	var req ResourceRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	resource, err := s.db.UpdateResource(r.Context(), id, req.Title, req.URL, req.Summary, req.Category, req.Published)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if resource == nil {
		s.failWith(w, &ErrNotFound{Entity: "resource", ID: id})
		return
	}

	s.audit.Record(r.Context(), principal.ID, "resource.update", "resource", id, resource.Title)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "resource": resource})
}

// handleAdminDeleteResource removes a career resource.
func (s *Server) handleAdminDeleteResource(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resource id")
		return
	}

	resource, err := s.db.GetResource(r.Context(), id)
	if err != nil {
		s.failWith(w, err)
		return
	}
	if resource == nil {
		s.failWith(w, &ErrNotFound{Entity: "resource", ID: id})
		return
	}

	if err := s.db.DeleteResource(r.Context(), id); err != nil {
		s.failWith(w, err)
		return
	}

	s.audit.Record(r.Context(), principal.ID, "resource.delete", "resource", id, resource.Title)

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "resource deleted"})
}
