package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/brightlabs/sitesync/internal/config"
)

// Scheduler runs the sync pipeline on a timer.
type Scheduler struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
	interval     time.Duration
	enabled      bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a Scheduler from config and the orchestrator.
func NewScheduler(cfg config.SchedulerConfig, orchestrator *Orchestrator, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		orchestrator: orchestrator,
		logger:       logger,
		interval:     cfg.Interval(),
		enabled:      cfg.Enabled(),
	}
}

// Start begins periodic sync in a background goroutine.
// If disabled, this is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.enabled {
		s.logger.Info("periodic sync disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Go(func() {
		s.run(ctx)
	})

	s.logger.Info("periodic sync started", slog.Duration("interval", s.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.logger.Info("periodic sync stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	// Sync immediately on startup
	s.sync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sync(ctx)
		}
	}
}

func (s *Scheduler) sync(ctx context.Context) {
	if _, err := s.orchestrator.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ErrSyncInProgress) {
			s.logger.Debug("scheduled sync skipped: run in progress")
			return
		}
		s.logger.Error("scheduled sync failed", slog.String("error", err.Error()))
	}
}
