package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AppendActivity writes one entry to the admin activity log.
func (db *DB) AppendActivity(ctx context.Context, adminID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO admin_activity (admin_id, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		adminID, action, entityType, entityID, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListRecentActivity retrieves the most recent activity entries.
func (db *DB) ListRecentActivity(ctx context.Context, limit int) ([]ActivityEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, admin_id, action, entity_type, entity_id, detail, created_at
		 FROM admin_activity ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var events []ActivityEvent
	for rows.Next() {
		var e ActivityEvent
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
