package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	purged  int64
	err     error
	done    chan struct{}
}

func (p *recordingPurger) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	p.mu.Lock()
	p.cutoffs = append(p.cutoffs, before)
	p.mu.Unlock()
	if p.done != nil {
		close(p.done)
	}
	return p.purged, p.err
}

func TestPurgeDeletedWordsTaskConfig(t *testing.T) {
	cfg := PurgeDeletedWordsTask{Retention: time.Hour}.Config()

	assert.Equal(t, "purge_deleted_words", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
}

func TestPurgeDeletedWordsProcessor(t *testing.T) {
	now := time.Date(2024, 3, 31, 3, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("passes retention cutoff to purger", func(t *testing.T) {
		purger := &recordingPurger{purged: 4}
		process := PurgeDeletedWordsProcessor(purger, nil, clock)

		err := process(context.Background(), PurgeDeletedWordsTask{Retention: 30 * 24 * time.Hour})

		require.NoError(t, err)
		require.Len(t, purger.cutoffs, 1)
		assert.Equal(t, time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), purger.cutoffs[0])
	})

	t.Run("wraps purger error", func(t *testing.T) {
		purger := &recordingPurger{err: errors.New("database is locked")}
		process := PurgeDeletedWordsProcessor(purger, nil, clock)

		err := process(context.Background(), PurgeDeletedWordsTask{Retention: time.Hour})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is locked")
	})

	t.Run("rejects non-positive retention", func(t *testing.T) {
		purger := &recordingPurger{}
		process := PurgeDeletedWordsProcessor(purger, nil, clock)

		err := process(context.Background(), PurgeDeletedWordsTask{})

		require.Error(t, err)
		assert.Empty(t, purger.cutoffs)
	})

	t.Run("fails without purger", func(t *testing.T) {
		process := PurgeDeletedWordsProcessor(nil, nil, clock)
		assert.Error(t, process(context.Background(), PurgeDeletedWordsTask{Retention: time.Hour}))
	})
}

func TestPurgeDeletedWordsQueue_RunsThroughClient(t *testing.T) {
	client := newTestClient(t)
	purger := &recordingPurger{done: make(chan struct{})}
	client.Register(NewPurgeDeletedWordsQueue(purger, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	_, err := client.Add(PurgeDeletedWordsTask{Retention: time.Hour}).Save()
	require.NoError(t, err)

	select {
	case <-purger.done:
	case <-time.After(5 * time.Second):
		t.Fatal("purge task was not executed within timeout")
	}

	purger.mu.Lock()
	defer purger.mu.Unlock()
	require.Len(t, purger.cutoffs, 1)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), purger.cutoffs[0], time.Minute)
}

func TestClient_EnqueuePurgeDeleted(t *testing.T) {
	client := newTestClient(t)
	purger := &recordingPurger{done: make(chan struct{})}
	client.Register(NewPurgeDeletedWordsQueue(purger, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	require.NoError(t, client.EnqueuePurgeDeleted(ctx, 24*time.Hour))

	select {
	case <-purger.done:
	case <-time.After(5 * time.Second):
		t.Fatal("purge task was not executed within timeout")
	}
}
