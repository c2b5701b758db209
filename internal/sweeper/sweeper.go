// Package sweeper deactivates job postings that have passed their expiry.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Store is the persistence surface the sweeper drives.
type Store interface {
	DeactivateExpiredJobs(ctx context.Context) (int64, error)
}

// Sweeper periodically flips expired active postings to inactive and
// invisible, the same transition an administrator would apply by hand.
type Sweeper struct {
	store  Store
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a sweeper firing every intervalMinutes.
func New(store Store, logger *zap.Logger, intervalMinutes int) (*Sweeper, error) {
	s := &Sweeper{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}

	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}
	return s, nil
}

// Start begins the cron schedule in its own goroutine.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.store.DeactivateExpiredJobs(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("deactivated expired postings", zap.Int64("count", count))
	}
}
