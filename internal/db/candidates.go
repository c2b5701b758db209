package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCandidate inserts a new candidate account and returns its ID.
func (db *DB) CreateCandidate(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// GetCandidate retrieves a candidate by ID. Returns nil when not found.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, headline, bio, skills, resume_url, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Headline, &c.Bio, &c.Skills, &c.ResumeURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// GetCandidateByEmail retrieves a candidate by email. Returns nil when not found.
func (db *DB) GetCandidateByEmail(ctx context.Context, email string) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, headline, bio, skills, resume_url, created_at, updated_at
		 FROM candidates WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Headline, &c.Bio, &c.Skills, &c.ResumeURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate by email: %w", err)
	}
	return &c, nil
}

// CandidateExists reports whether a candidate account exists.
func (db *DB) CandidateExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate existence: %w", err)
	}
	return exists, nil
}

// CheckCandidateEmailExists reports whether an email is already registered.
func (db *DB) CheckCandidateEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate email: %w", err)
	}
	return exists, nil
}

// UpdateCandidateProfile updates the descriptive profile fields.
func (db *DB) UpdateCandidateProfile(ctx context.Context, id uuid.UUID, name, headline, bio, resumeURL string, skills []string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET name = $2, headline = $3, bio = $4, resume_url = $5, skills = $6, updated_at = NOW()
		 WHERE id = $1`,
		id, name, headline, bio, resumeURL, StringArray(skills),
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}

// UpdateCandidatePassword replaces the stored password hash.
func (db *DB) UpdateCandidatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}

// ListCandidates retrieves candidates, newest first.
func (db *DB) ListCandidates(ctx context.Context, limit, offset int) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, password_hash, headline, bio, skills, resume_url, created_at, updated_at
		 FROM candidates ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Headline, &c.Bio, &c.Skills, &c.ResumeURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate and, via cascade, their applications.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}
