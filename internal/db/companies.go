package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateCompany inserts a new company account and returns its ID.
func (db *DB) CreateCompany(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create company: %w", err)
	}
	return id, nil
}

// GetCompany retrieves a company by ID. Returns nil when not found.
func (db *DB) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, description, website, logo_url, created_at, updated_at
		 FROM companies WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}

// GetCompanyByEmail retrieves a company by email. Returns nil when not found.
func (db *DB) GetCompanyByEmail(ctx context.Context, email string) (*Company, error) {
	var c Company
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, description, website, logo_url, created_at, updated_at
		 FROM companies WHERE email = $1`,
		email,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by email: %w", err)
	}
	return &c, nil
}

// CompanyExists reports whether a company account exists.
func (db *DB) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return exists, nil
}

// CheckCompanyEmailExists reports whether an email is already registered.
func (db *DB) CheckCompanyEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company email: %w", err)
	}
	return exists, nil
}

// UpdateCompanyProfile updates the descriptive profile fields.
func (db *DB) UpdateCompanyProfile(ctx context.Context, id uuid.UUID, name, description, website, logoURL string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, website = $4, logo_url = $5, updated_at = NOW()
		 WHERE id = $1`,
		id, name, description, website, logoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update company profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %s", id)
	}
	return nil
}

// ListCompanies retrieves companies, newest first.
func (db *DB) ListCompanies(ctx context.Context, limit, offset int) ([]Company, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, password_hash, description, website, logo_url, created_at, updated_at
		 FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// DeleteCompany removes a company and, via cascade, its postings and their
// applications.
func (db *DB) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %s", id)
	}
	return nil
}
