package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Blog Posts
// -----------------------------------------------------------------------------

// CreateBlogPost inserts an admin-authored article.
func (db *DB) CreateBlogPost(ctx context.Context, authorID uuid.UUID, title, body string, published bool) (*BlogPost, error) {
	var p BlogPost
	err := db.pool.QueryRow(ctx,
		`INSERT INTO blog_posts (author_id, title, body, published)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, author_id, title, body, published, created_at, updated_at`,
		authorID, title, body, published,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return &p, nil
}

// GetBlogPost retrieves a post by ID. Returns nil when not found.
func (db *DB) GetBlogPost(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	var p BlogPost
	err := db.pool.QueryRow(ctx,
		`SELECT id, author_id, title, body, published, created_at, updated_at
		 FROM blog_posts WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &p, nil
}

// UpdateBlogPost replaces the editable fields of a post.
func (db *DB) UpdateBlogPost(ctx context.Context, id uuid.UUID, title, body string, published bool) (*BlogPost, error) {
	var p BlogPost
	err := db.pool.QueryRow(ctx,
		`UPDATE blog_posts
		 SET title = $2, body = $3, published = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, author_id, title, body, published, created_at, updated_at`,
		id, title, body, published,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	return &p, nil
}

// ListBlogPosts retrieves posts, newest first. When publishedOnly is true,
// drafts are excluded.
func (db *DB) ListBlogPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]BlogPost, error) {
	query := `SELECT id, author_id, title, body, published, created_at, updated_at
		 FROM blog_posts`
	if publishedOnly {
		query += ` WHERE published = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := db.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		var p BlogPost
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// DeleteBlogPost removes a post.
func (db *DB) DeleteBlogPost(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blog post not found: %s", id)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Career Resources
// -----------------------------------------------------------------------------

// CreateResource inserts a curated career resource.
func (db *DB) CreateResource(ctx context.Context, title, url, summary, category string, published bool) (*CareerResource, error) {
	var r CareerResource
	err := db.pool.QueryRow(ctx,
		`INSERT INTO career_resources (title, url, summary, category, published)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, url, summary, category, published, created_at`,
		title, url, summary, category, published,
	).Scan(&r.ID, &r.Title, &r.URL, &r.Summary, &r.Category, &r.Published, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return &r, nil
}

// GetResource retrieves a resource by ID. Returns nil when none exists.
func (db *DB) GetResource(ctx context.Context, id uuid.UUID) (*CareerResource, error) {
	var r CareerResource
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, url, summary, category, published, created_at
		 FROM career_resources WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Title, &r.URL, &r.Summary, &r.Category, &r.Published, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return &r, nil
}

// UpdateResource replaces the editable fields of a resource.
func (db *DB) UpdateResource(ctx context.Context, id uuid.UUID, title, url, summary, category string, published bool) (*CareerResource, error) {
	var r CareerResource
	err := db.pool.QueryRow(ctx,
		`UPDATE career_resources
		 SET title = $2, url = $3, summary = $4, category = $5, published = $6
		 WHERE id = $1
		 RETURNING id, title, url, summary, category, published, created_at`,
		id, title, url, summary, category, published,
	).Scan(&r.ID, &r.Title, &r.URL, &r.Summary, &r.Category, &r.Published, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return &r, nil
}

// ListResources retrieves resources, newest first. When publishedOnly is
// true, unpublished entries are excluded.
func (db *DB) ListResources(ctx context.Context, publishedOnly bool, limit, offset int) ([]CareerResource, error) {
	query := `SELECT id, title, url, summary, category, published, created_at
		 FROM career_resources`
	if publishedOnly {
		query += ` WHERE published = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := db.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []CareerResource
	for rows.Next() {
		var r CareerResource
		if err := rows.Scan(&r.ID, &r.Title, &r.URL, &r.Summary, &r.Category, &r.Published, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// DeleteResource removes a resource.
func (db *DB) DeleteResource(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM career_resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource not found: %s", id)
	}
	return nil
}
