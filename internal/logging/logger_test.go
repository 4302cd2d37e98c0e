package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "test", "production", ""} {
		t.Run("env="+env, func(t *testing.T) {
			logger, err := New(env)
			require.NoError(t, err)
			require.NotNil(t, logger.SugaredLogger)
		})
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &Logger{SugaredLogger: zap.New(core).Sugar()}

	logger.With("component", "words").Warn("word lookup failed", "id", 7)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "word lookup failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "words", fields["component"])
	assert.EqualValues(t, 7, fields["id"])
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() {
		logger.Info("ignored", "k", "v")
		logger.Sync()
	})
}
