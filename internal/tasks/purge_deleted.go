package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/kelime/internal/logging"
)

// DeletedWordsPurger permanently removes words soft-deleted before a cutoff.
type DeletedWordsPurger interface {
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

// PurgeDeletedWordsTask empties the trash of words deleted more than
// Retention ago.
type PurgeDeletedWordsTask struct {
	Retention time.Duration `json:"retention"`
}

// Config returns the queue configuration for trash purge tasks.
func (t PurgeDeletedWordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_deleted_words",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeDeletedWordsProcessor creates a processor function for PurgeDeletedWordsTask.
// now is injectable so the cutoff can be pinned in tests.
func PurgeDeletedWordsProcessor(purger DeletedWordsPurger, log *logging.Logger, now func() time.Time) backlite.QueueProcessor[PurgeDeletedWordsTask] {
	if log == nil {
		log = logging.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	return func(ctx context.Context, task PurgeDeletedWordsTask) error {
		if purger == nil {
			return fmt.Errorf("deleted words purger not configured")
		}
		if task.Retention <= 0 {
			return fmt.Errorf("purge deleted words: retention must be positive, got %s", task.Retention)
		}

		cutoff := now().Add(-task.Retention)
		purged, err := purger.PurgeDeleted(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purge deleted words: %w", err)
		}

		log.Info("Purged deleted words", "count", purged, "cutoff", cutoff.UTC().Format(time.RFC3339))
		return nil
	}
}

// NewPurgeDeletedWordsQueue creates a backlite queue for trash purge tasks.
func NewPurgeDeletedWordsQueue(purger DeletedWordsPurger, log *logging.Logger) backlite.Queue {
	return backlite.NewQueue(PurgeDeletedWordsProcessor(purger, log, nil))
}

// EnqueuePurgeDeleted adds one trash purge task to the queue.
func (c *Client) EnqueuePurgeDeleted(ctx context.Context, retention time.Duration) error {
	ids, err := c.Add(PurgeDeletedWordsTask{Retention: retention}).Ctx(ctx).Save()
	if err != nil {
		return fmt.Errorf("enqueue purge deleted words: %w", err)
	}
	c.log.Debug("Queued trash purge", "task_ids", ids, "retention", retention.String())
	return nil
}
