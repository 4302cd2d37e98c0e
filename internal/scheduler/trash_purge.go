// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/logging"
)

// PurgeEnqueuer hands trash purge work to the task queue.
type PurgeEnqueuer interface {
	EnqueuePurgeDeleted(ctx context.Context, retention time.Duration) error
}

// TrashPurgeScheduler periodically queues removal of words that have been
// in the trash longer than the retention period.
type TrashPurgeScheduler struct {
	enqueuer PurgeEnqueuer
	settings config.TrashPurge
	log      *logging.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewTrashPurgeScheduler creates a new scheduler instance
func NewTrashPurgeScheduler(enqueuer PurgeEnqueuer, settings config.TrashPurge, log *logging.Logger) *TrashPurgeScheduler {
	if log == nil {
		log = logging.NewNop()
	}
	return &TrashPurgeScheduler{
		enqueuer: enqueuer,
		settings: settings,
		log:      log.With("component", "trash_purge_scheduler"),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if purging is enabled
func (s *TrashPurgeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.settings.Enabled {
		s.log.Info("Trash purge scheduler disabled")
		return nil
	}

	if s.enqueuer == nil {
		return fmt.Errorf("trash purge scheduler: task queue not configured")
	}

	if err := config.ValidateCronSchedule(s.settings.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.settings.Schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.settings.Schedule, func() {
		s.enqueue(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule trash purge job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Trash purge scheduler started",
		"schedule", s.settings.Schedule,
		"retention", s.settings.Retention.String(),
		"next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *TrashPurgeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.log.Info("Trash purge scheduler stopped")
}

// RunNow queues a purge immediately, outside the schedule.
func (s *TrashPurgeScheduler) RunNow(ctx context.Context) error {
	if s.enqueuer == nil {
		return fmt.Errorf("trash purge scheduler: task queue not configured")
	}
	return s.enqueuer.EnqueuePurgeDeleted(ctx, s.settings.Retention)
}

// IsRunning returns whether the scheduler is active
func (s *TrashPurgeScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next purge will be queued
func (s *TrashPurgeScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

func (s *TrashPurgeScheduler) enqueue(ctx context.Context) {
	if err := s.enqueuer.EnqueuePurgeDeleted(ctx, s.settings.Retention); err != nil {
		s.log.Error("Failed to queue trash purge", "error", err)
		return
	}
	s.log.Info("Trash purge queued", "retention", s.settings.Retention.String())
}
