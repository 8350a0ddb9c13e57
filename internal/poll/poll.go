// Package poll implements a bounded status poller for asynchronous remote
// jobs. It replaces ad-hoc sleep loops with a cancellable wait that is
// parameterized by interval and deadline and returns a tagged outcome.
package poll

import (
	"context"
	"fmt"
	"time"
)

// Outcome tags the result of a polling loop.
type Outcome string

// Outcome values.
const (
	Completed Outcome = "completed"
	Failed    Outcome = "failed"
	TimedOut  Outcome = "timed_out"
)

// Result is the terminal result of a polling loop. Status carries the remote
// job's last observed status string.
type Result struct {
	Outcome Outcome
	Status  string
}

// Probe reports the current remote status. terminal ends the loop; a status
// of "completed" maps to Completed, any other terminal status to Failed.
type Probe func(ctx context.Context) (status string, terminal bool, err error)

// Until probes at the given interval until the job reaches a terminal status
// or the deadline elapses. The first probe runs immediately. Context
// cancellation and probe errors abort the loop with an error.
func Until(ctx context.Context, interval, deadline time.Duration, probe Probe) (Result, error) {
	if interval <= 0 {
		return Result{}, fmt.Errorf("poll: interval must be positive, got %v", interval)
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last string
	for {
		status, terminal, err := probe(ctx)
		if err != nil {
			// A probe cut short by the deadline is a timeout, not a probe
			// failure; parent cancellation propagates as-is.
			if ctx.Err() == context.DeadlineExceeded {
				return Result{Outcome: TimedOut, Status: last}, nil
			}
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			return Result{}, err
		}
		last = status

		if terminal {
			if status == string(Completed) {
				return Result{Outcome: Completed, Status: status}, nil
			}
			return Result{Outcome: Failed, Status: status}, nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return Result{Outcome: TimedOut, Status: last}, nil
			}
			return Result{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
