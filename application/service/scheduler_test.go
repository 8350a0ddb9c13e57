package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlabs/sitesync/internal/config"
)

func schedulerConfig(enabled bool, interval time.Duration) config.SchedulerConfig {
	return config.NewSchedulerConfig().WithEnabled(enabled).WithInterval(interval)
}

func TestSchedulerRunsPeriodically(t *testing.T) {
	idx := newFakeIndex(nil)
	history := &fakeHistory{}
	o := newOrchestrator(t, testConfig(t), idx, history)

	s := NewScheduler(schedulerConfig(true, 20*time.Millisecond), o, slog.New(slog.DiscardHandler))
	s.Start(context.Background())
	defer s.Stop()

	// One run at startup, then at least one more on the ticker.
	require.Eventually(t, func() bool {
		history.mu.Lock()
		defer history.mu.Unlock()
		return len(history.saved) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	idx := newFakeIndex(nil)
	history := &fakeHistory{}
	o := newOrchestrator(t, testConfig(t), idx, history)

	s := NewScheduler(schedulerConfig(false, 10*time.Millisecond), o, slog.New(slog.DiscardHandler))
	s.Start(context.Background())
	s.Stop()

	time.Sleep(30 * time.Millisecond)
	history.mu.Lock()
	defer history.mu.Unlock()
	assert.Empty(t, history.saved)
}

func TestSchedulerStopWaits(t *testing.T) {
	idx := newFakeIndex(nil)
	o := newOrchestrator(t, testConfig(t), idx, &fakeHistory{})

	s := NewScheduler(schedulerConfig(true, time.Hour), o, slog.New(slog.DiscardHandler))
	s.Start(context.Background())
	s.Stop()

	// Stop is idempotent.
	s.Stop()
}
