package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobPostingCreateInput carries the company-supplied fields of a new posting.
// New postings always start as pending and invisible; moderation flips both.
type JobPostingCreateInput struct {
	CompanyID       uuid.UUID
	Title           string
	Description     string
	Location        string
	EmploymentType  string
	RequiredSkills  []string
	PreferredSkills []string
	ExpiresAt       *time.Time
}

const jobPostingColumns = `id, company_id, title, description, location, employment_type,
	        status, visible, required_skills, preferred_skills, applications_count,
	        expires_at, created_at, updated_at`

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var p JobPosting
	err := row.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Location,
		&p.EmploymentType, &p.Status, &p.Visible, &p.RequiredSkills, &p.PreferredSkills,
		&p.ApplicationsCount, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateJobPosting inserts a new posting in the pending state.
func (db *DB) CreateJobPosting(ctx context.Context, input *JobPostingCreateInput) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (company_id, title, description, location, employment_type,
		                           status, visible, required_skills, preferred_skills, expires_at)
		 VALUES ($1, $2, $3, $4, $5, 'pending', false, $6, $7, $8)
		 RETURNING `+jobPostingColumns,
		input.CompanyID, input.Title, input.Description, input.Location, input.EmploymentType,
		StringArray(input.RequiredSkills), StringArray(input.PreferredSkills), input.ExpiresAt,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return p, nil
}

// GetJobPosting retrieves a posting by ID. Returns nil when not found.
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// UpdateJobPosting updates the company-editable fields of a posting.
func (db *DB) UpdateJobPosting(ctx context.Context, id uuid.UUID, input *JobPostingCreateInput) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE job_postings
		 SET title = $2, description = $3, location = $4, employment_type = $5,
		     required_skills = $6, preferred_skills = $7, expires_at = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobPostingColumns,
		id, input.Title, input.Description, input.Location, input.EmploymentType,
		StringArray(input.RequiredSkills), StringArray(input.PreferredSkills), input.ExpiresAt,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}
	return p, nil
}

// UpdateJobStatus persists a moderated status together with the visibility
// it implies. Callers validate the transition before reaching here.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, visible bool) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE job_postings
		 SET status = $2, visible = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobPostingColumns,
		id, status, visible,
	)
	p, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	return p, nil
}

// ListEligibleJobs retrieves publicly visible active postings, newest first.
func (db *DB) ListEligibleJobs(ctx context.Context, limit, offset int) ([]JobPosting, error) {
	return db.listJobs(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE status = 'active' AND visible = true
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListJobsByCompany retrieves all postings owned by a company, newest first.
func (db *DB) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]JobPosting, error) {
	return db.listJobs(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings WHERE company_id = $1
		 ORDER BY created_at DESC`,
		companyID)
}

// ListJobsOptions contains admin-side filters for listing postings.
type ListJobsOptions struct {
	Status string
	Limit  int
	Offset int
}

// ListJobs lists postings across all companies with optional status filter.
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]JobPosting, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if opts.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, opts.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM job_postings %s", whereClause)
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count job postings: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT `+jobPostingColumns+`
		 FROM job_postings %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	postings, err := db.listJobs(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}

func (db *DB) listJobs(ctx context.Context, query string, args ...interface{}) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		var p JobPosting
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Location,
			&p.EmploymentType, &p.Status, &p.Visible, &p.RequiredSkills, &p.PreferredSkills,
			&p.ApplicationsCount, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, nil
}

// DeleteJobPosting removes a posting and, via cascade, its applications.
func (db *DB) DeleteJobPosting(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}
	return nil
}

// DeactivateExpiredJobs flips active postings past their expiry to inactive
// and invisible. Returns the number of postings deactivated.
func (db *DB) DeactivateExpiredJobs(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_postings
		 SET status = 'inactive', visible = false, updated_at = NOW()
		 WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at < NOW()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired postings: %w", err)
	}
	return result.RowsAffected(), nil
}
