// Package audit records administrator actions to an append-only activity log.
package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence surface the recorder writes to.
type Store interface {
	AppendActivity(ctx context.Context, adminID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) error
}

// Recorder appends activity events after the primary mutation has
// committed. A failed append is logged and swallowed: the activity log is a
// side channel and must never fail the operation it describes.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder creates a Recorder backed by the given store.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one event. Call it only after the primary write succeeded.
func (r *Recorder) Record(ctx context.Context, adminID uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) {
	if err := r.store.AppendActivity(ctx, adminID, action, entityType, entityID, detail); err != nil {
		r.logger.Warn("activity log append failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
	}
}
