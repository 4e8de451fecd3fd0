// Package scheduler runs periodic maintenance tasks.
package scheduler

import (
	"context"
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

const defaultSweepInterval = 1 * time.Hour

// RevocationSweepScheduler periodically deletes expired deny-list rows.
// Lookups already treat expired rows as absent, so the sweep only bounds
// storage growth; its cadence is not a correctness concern.
type RevocationSweepScheduler struct {
	repo     auth.RevocationRepository
	logger   logger.Interface
	interval time.Duration
	stopChan chan struct{}
}

// NewRevocationSweepScheduler creates a new revocation sweep scheduler
func NewRevocationSweepScheduler(repo auth.RevocationRepository, interval time.Duration, logger logger.Interface) *RevocationSweepScheduler {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &RevocationSweepScheduler{
		repo:     repo,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *RevocationSweepScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting revocation sweep scheduler", "interval", s.interval)
	go s.run(ctx)
}

// Stop stops the scheduler
func (s *RevocationSweepScheduler) Stop() {
	close(s.stopChan)
}

func (s *RevocationSweepScheduler) run(ctx context.Context) {
	// Run immediately on start
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("revocation sweep stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("revocation sweep stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RevocationSweepScheduler) sweep(ctx context.Context) {
	removed, err := s.repo.SweepExpired(ctx)
	if err != nil {
		s.logger.Errorw("revocation sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Infow("revocation sweep removed expired records", "count", removed)
	}
}
