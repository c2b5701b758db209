package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniel/jobboard/internal/config"
	"github.com/daniel/jobboard/internal/db"
)

// accountStore is the persistence surface the account service needs.
type accountStore interface {
	CreateCandidate(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	GetCandidateByEmail(ctx context.Context, email string) (*db.Candidate, error)
	CheckCandidateEmailExists(ctx context.Context, email string) (bool, error)
	UpdateCandidatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateCompany(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*db.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*db.Company, error)
	CheckCompanyEmailExists(ctx context.Context, email string) (bool, error)

	GetAdminByEmail(ctx context.Context, email string) (*db.Admin, error)
}

// AccountService provides registration and login for the three account
// kinds. Passwords are bcrypt-hashed; login failures are always the same
// generic credentials error.
type AccountService struct {
	store          accountStore
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates an AccountService with the given dependencies.
func NewAccountService(store accountStore, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{store: store, passwordConfig: passwordConfig}
}

// RegisterCandidate creates a new candidate account.
func (s *AccountService) RegisterCandidate(ctx context.Context, name, email, password string) (*db.Candidate, error) {
	exists, err := s.store.CheckCandidateEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.store.CreateCandidate(ctx, name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	candidate, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created candidate: %w", err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("created candidate not found: %s", id)
	}
	return candidate, nil
}

// LoginCandidate authenticates a candidate by email and password.
func (s *AccountService) LoginCandidate(ctx context.Context, email, password string) (*db.Candidate, error) {
	candidate, err := s.store.GetCandidateByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}
	// Security: same generic error whether the account is missing or the
	// password is wrong.
	if candidate == nil || !s.passwordConfig.VerifyPassword(password, candidate.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return candidate, nil
}

// RegisterCompany creates a new company account.
func (s *AccountService) RegisterCompany(ctx context.Context, name, email, password string) (*db.Company, error) {
	exists, err := s.store.CheckCompanyEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.store.CreateCompany(ctx, name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("created company not found: %s", id)
	}
	return company, nil
}

// LoginCompany authenticates a company by email and password.
func (s *AccountService) LoginCompany(ctx context.Context, email, password string) (*db.Company, error) {
	company, err := s.store.GetCompanyByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get company by email: %w", err)
	}
	if company == nil || !s.passwordConfig.VerifyPassword(password, company.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return company, nil
}

// LoginAdmin authenticates an administrator by email and password. There is
// no public admin registration; accounts are seeded by the create-admin
// command.
func (s *AccountService) LoginAdmin(ctx context.Context, email, password string) (*db.Admin, error) {
	admin, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	if admin == nil || !s.passwordConfig.VerifyPassword(password, admin.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return admin, nil
}

// UpdateCandidatePassword verifies the current password and stores a new one.
func (s *AccountService) UpdateCandidatePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	candidate, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return &ErrNotFound{Entity: "candidate", ID: id}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, candidate.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.store.UpdateCandidatePassword(ctx, id, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
