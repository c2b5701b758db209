package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateApplication is returned when a candidate applies to the same
// posting twice. Uniqueness is enforced by a compound unique index on
// (candidate_id, job_id), so concurrent applies cannot both succeed.
var ErrDuplicateApplication = errors.New("application already exists for this job")

// CreateApplication inserts an application and increments the posting's
// application counter in one transaction.
func (db *DB) CreateApplication(ctx context.Context, candidateID, jobID, companyID uuid.UUID, coverNote string) (*Application, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var a Application
	err = tx.QueryRow(ctx,
		`INSERT INTO applications (candidate_id, job_id, company_id, cover_note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, candidate_id, job_id, company_id, cover_note, created_at`,
		candidateID, jobID, companyID, coverNote,
	).Scan(&a.ID, &a.CandidateID, &a.JobID, &a.CompanyID, &a.CoverNote, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE job_postings SET applications_count = applications_count + 1 WHERE id = $1`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment application counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &a, nil
}

// GetApplication retrieves an application by ID. Returns nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, job_id, company_id, cover_note, created_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.CandidateID, &a.JobID, &a.CompanyID, &a.CoverNote, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByCandidate retrieves a candidate's applications, newest first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT id, candidate_id, job_id, company_id, cover_note, created_at
		 FROM applications WHERE candidate_id = $1
		 ORDER BY created_at DESC`,
		candidateID)
}

// ListApplicationsByJob retrieves all applications for one posting, newest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		`SELECT id, candidate_id, job_id, company_id, cover_note, created_at
		 FROM applications WHERE job_id = $1
		 ORDER BY created_at DESC`,
		jobID)
}

func (db *DB) listApplications(ctx context.Context, query string, args ...interface{}) ([]Application, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.CompanyID, &a.CoverNote, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, nil
}

// DeleteApplication withdraws an application and decrements the posting's
// counter in one transaction.
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var jobID uuid.UUID
	err = tx.QueryRow(ctx,
		`DELETE FROM applications WHERE id = $1 RETURNING job_id`, id,
	).Scan(&jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("application not found: %s", id)
		}
		return fmt.Errorf("failed to delete application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE job_postings
		 SET applications_count = GREATEST(applications_count - 1, 0)
		 WHERE id = $1`,
		jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement application counter: %w", err)
	}

	return tx.Commit(ctx)
}
