// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/daniel/jobboard/internal/audit"
	"github.com/daniel/jobboard/internal/cache"
	"github.com/daniel/jobboard/internal/config"
	"github.com/daniel/jobboard/internal/db"
	"github.com/daniel/jobboard/internal/server/middleware"
	"github.com/daniel/jobboard/internal/server/ratelimit"
	"github.com/daniel/jobboard/internal/sweeper"
)

// recommendationCache holds computed recommendation lists per candidate.
// A Get miss means the handler recomputes from the database, so a broken
// or absent cache only costs latency.
type recommendationCache interface {
	Get(ctx context.Context, candidateID uuid.UUID, dest any) bool
	Set(ctx context.Context, candidateID uuid.UUID, payload any)
	Invalidate(ctx context.Context, candidateID uuid.UUID)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	db              *db.DB
	logger          *zap.Logger
	validator       *validator.Validate
	rateLimiter     *ratelimit.Limiter
	tokens          *TokenService
	accounts        *AccountService
	resolver        *IdentityResolver
	audit           *audit.Recorder
	recommendations recommendationCache
	sweeper         *sweeper.Sweeper
}

// New creates a new server instance
func New(cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:        database,
		logger:    logger,
		validator: validator.New(),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.accounts = NewAccountService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.tokens = NewTokenService(jwtConfig)
	s.resolver = NewIdentityResolver(s.tokens, database, logger)

	s.audit = audit.NewRecorder(database, logger)

	// Recommendation cache is optional. Without Redis every request
	// recomputes scores from the database.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}
	s.recommendations = cache.NewRecommendations(redisClient, cache.DefaultRecommendationTTL, logger)

	// Background sweep of expired postings
	s.sweeper, err = sweeper.New(database, logger, cfg.SweepIntervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to create sweeper: %w", err)
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withRecovery(s.withCORS(s.routes())))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Protected groups are wrapped per route so
// the identity chain runs only where a principal is needed.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	asCandidate := middleware.RequireKind(s.resolver, middleware.KindCandidate)
	asCompany := middleware.RequireKind(s.resolver, middleware.KindCompany)
	asAdmin := middleware.RequireKind(s.resolver, middleware.KindAdministrator)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/candidates/register", s.handleRegisterCandidate)
	mux.HandleFunc("POST /auth/candidates/login", s.handleLoginCandidate)
	mux.HandleFunc("POST /auth/companies/register", s.handleRegisterCompany)
	mux.HandleFunc("POST /auth/companies/login", s.handleLoginCompany)
	mux.HandleFunc("POST /admin/login", s.handleLoginAdmin)

	// Public browsing
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /blog", s.handleListBlogPosts)
	mux.HandleFunc("GET /blog/{id}", s.handleGetBlogPost)
	mux.HandleFunc("GET /resources", s.handleListResources)

	// Candidate
	mux.Handle("GET /me", asCandidate(http.HandlerFunc(s.handleGetMyProfile)))
	mux.Handle("PUT /me", asCandidate(http.HandlerFunc(s.handleUpdateMyProfile)))
	mux.Handle("PUT /me/password", asCandidate(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("GET /recommendations", asCandidate(http.HandlerFunc(s.handleRecommendations)))
	mux.Handle("GET /me/applications", asCandidate(http.HandlerFunc(s.handleListMyApplications)))
	mux.Handle("DELETE /me/applications/{id}", asCandidate(http.HandlerFunc(s.handleWithdrawApplication)))
	mux.Handle("POST /jobs/{id}/apply", asCandidate(http.HandlerFunc(s.handleApply)))

	// Company
	mux.Handle("GET /company/profile", asCompany(http.HandlerFunc(s.handleGetCompanyProfile)))
	mux.Handle("PUT /company/profile", asCompany(http.HandlerFunc(s.handleUpdateCompanyProfile)))
	mux.Handle("POST /company/jobs", asCompany(http.HandlerFunc(s.handleCreateJob)))
	mux.Handle("GET /company/jobs", asCompany(http.HandlerFunc(s.handleListCompanyJobs)))
	mux.Handle("PUT /company/jobs/{id}", asCompany(http.HandlerFunc(s.handleUpdateCompanyJob)))
	mux.Handle("DELETE /company/jobs/{id}", asCompany(http.HandlerFunc(s.handleDeleteCompanyJob)))
	mux.Handle("GET /company/jobs/{id}/applications", asCompany(http.HandlerFunc(s.handleListJobApplications)))

	// Admin moderation
	mux.Handle("GET /admin/me", asAdmin(http.HandlerFunc(s.handleAdminMe)))
	mux.Handle("GET /admin/jobs", asAdmin(http.HandlerFunc(s.handleAdminListJobs)))
	mux.Handle("PUT /admin/jobs/{id}/status", asAdmin(http.HandlerFunc(s.handleUpdateJobStatus)))
	mux.Handle("DELETE /admin/jobs/{id}", asAdmin(http.HandlerFunc(s.handleAdminDeleteJob)))
	mux.Handle("GET /admin/candidates", asAdmin(http.HandlerFunc(s.handleAdminListCandidates)))
	mux.Handle("DELETE /admin/candidates/{id}", asAdmin(http.HandlerFunc(s.handleAdminDeleteCandidate)))
	mux.Handle("GET /admin/companies", asAdmin(http.HandlerFunc(s.handleAdminListCompanies)))
	mux.Handle("DELETE /admin/companies/{id}", asAdmin(http.HandlerFunc(s.handleAdminDeleteCompany)))
	mux.Handle("GET /admin/activity", asAdmin(http.HandlerFunc(s.handleAdminActivity)))

	// Admin content
	mux.Handle("GET /admin/blog", asAdmin(http.HandlerFunc(s.handleAdminListBlogPosts)))
	mux.Handle("POST /admin/blog", asAdmin(http.HandlerFunc(s.handleAdminCreateBlogPost)))
	mux.Handle("PUT /admin/blog/{id}", asAdmin(http.HandlerFunc(s.handleAdminUpdateBlogPost)))
	mux.Handle("DELETE /admin/blog/{id}", asAdmin(http.HandlerFunc(s.handleAdminDeleteBlogPost)))
	mux.Handle("GET /admin/resources", asAdmin(http.HandlerFunc(s.handleAdminListResources)))
	mux.Handle("POST /admin/resources", asAdmin(http.HandlerFunc(s.handleAdminCreateResource)))
	mux.Handle("PUT /admin/resources/{id}", asAdmin(http.HandlerFunc(s.handleAdminUpdateResource)))
	mux.Handle("DELETE /admin/resources/{id}", asAdmin(http.HandlerFunc(s.handleAdminDeleteResource)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.sweeper.Start()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.sweeper.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRecovery converts handler panics into 500 responses.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				s.errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(time.Until(info.ResetTime).Seconds())+1))
	s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
}
