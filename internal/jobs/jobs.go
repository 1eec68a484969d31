// Package jobs runs periodic maintenance work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"studio-admin/internal/domain/media"
	"studio-admin/pkg/logger"
)

const cleanupTimeout = 2 * time.Minute

type CleanupRunner interface {
	RetryCleanups(ctx context.Context, batch, maxAttempts int) (media.RetryResult, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		log: log,
	}
}

func (s *Scheduler) AddMediaCleanup(spec string, runner CleanupRunner, batch, maxAttempts int) error {
	if _, err := s.cron.AddFunc(spec, MediaCleanup(runner, batch, maxAttempts, s.log)); err != nil {
		return fmt.Errorf("schedule media cleanup %q: %w", spec, err)
	}
	s.log.Info("jobs: media cleanup scheduled", "spec", spec, "batch", batch)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("jobs: stop timed out")
	}
}

// MediaCleanup retries queued blob deletions once per call.
func MediaCleanup(runner CleanupRunner, batch, maxAttempts int, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		result, err := runner.RetryCleanups(ctx, batch, maxAttempts)
		if err != nil {
			log.InternalError("jobs: media cleanup failed", err)
			return
		}
		if result.Deleted+result.Failed+result.Dropped > 0 {
			log.Info("jobs: media cleanup", "deleted", result.Deleted, "failed", result.Failed, "dropped", result.Dropped)
		}
	}
}
