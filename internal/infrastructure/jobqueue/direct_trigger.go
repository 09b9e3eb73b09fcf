package jobqueue

import (
	"context"
	"log/slog"
	"time"
)

type recomputer interface {
	Recompute(ctx context.Context) error
}

// DirectTrigger runs the recompute in-process instead of going through an
// external queue. Used when no queue is configured, typically local runs
// and tests.
type DirectTrigger struct {
	service recomputer
	logger  *slog.Logger
	timeout time.Duration
}

func NewDirectTrigger(service recomputer, logger *slog.Logger, timeout time.Duration) *DirectTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &DirectTrigger{service: service, logger: logger, timeout: timeout}
}

// EnqueueRecompute starts the recompute in the background and returns
// immediately, matching the eventual consistency of the queued path. The
// background context is detached so the recompute outlives the request.
func (t *DirectTrigger) EnqueueRecompute(ctx context.Context) error {
	go func() {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()

		if err := t.service.Recompute(runCtx); err != nil {
			t.logger.ErrorContext(runCtx, "background leaderboard recompute failed", "error", err)
		}
	}()
	return nil
}
