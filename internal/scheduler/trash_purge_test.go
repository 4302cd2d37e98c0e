package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kelime/internal/config"
)

type fakeEnqueuer struct {
	mu         sync.Mutex
	retentions []time.Duration
	err        error
}

func (f *fakeEnqueuer) EnqueuePurgeDeleted(ctx context.Context, retention time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retentions = append(f.retentions, retention)
	return f.err
}

func (f *fakeEnqueuer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.retentions)
}

func enabledSettings() config.TrashPurge {
	return config.TrashPurge{Enabled: true, Schedule: "0 3 * * *", Retention: 720 * time.Hour}
}

func TestTrashPurgeScheduler_DisabledDoesNotStart(t *testing.T) {
	s := NewTrashPurgeScheduler(&fakeEnqueuer{}, config.TrashPurge{Schedule: "0 3 * * *"}, nil)

	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestTrashPurgeScheduler_StartStop(t *testing.T) {
	s := NewTrashPurgeScheduler(&fakeEnqueuer{}, enabledSettings(), nil)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	// A second start is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is safe
	s.Stop()
}

func TestTrashPurgeScheduler_StopsWhenContextCancelled(t *testing.T) {
	s := NewTrashPurgeScheduler(&fakeEnqueuer{}, enabledSettings(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestTrashPurgeScheduler_InvalidSchedule(t *testing.T) {
	settings := enabledSettings()
	settings.Schedule = "every day"
	s := NewTrashPurgeScheduler(&fakeEnqueuer{}, settings, nil)

	err := s.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestTrashPurgeScheduler_RequiresEnqueuer(t *testing.T) {
	s := NewTrashPurgeScheduler(nil, enabledSettings(), nil)

	assert.Error(t, s.Start(context.Background()))
	assert.Error(t, s.RunNow(context.Background()))
}

func TestTrashPurgeScheduler_RunNow(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	s := NewTrashPurgeScheduler(enqueuer, enabledSettings(), nil)

	require.NoError(t, s.RunNow(context.Background()))

	require.Equal(t, 1, enqueuer.calls())
	assert.Equal(t, 720*time.Hour, enqueuer.retentions[0])
}

func TestTrashPurgeScheduler_EnqueueErrorIsLogged(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("queue closed")}
	s := NewTrashPurgeScheduler(enqueuer, enabledSettings(), nil)

	assert.NotPanics(t, func() { s.enqueue(context.Background()) })
	assert.Equal(t, 1, enqueuer.calls())
}
