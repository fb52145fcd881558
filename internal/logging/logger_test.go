package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Cleanup(func() { Set(nil) })

	l, err := Init("warn", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.Same(t, l, L())
}

func TestInitEnvOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Cleanup(func() { Set(nil) })

	l, err := Init("error", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestInitInvalidLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	_, err := Init("loud", false)
	assert.Error(t, err)
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Component("docker").Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "docker", entries[0].ContextMap()["component"])
}

func TestDefaultIsNop(t *testing.T) {
	Set(nil)
	assert.NotPanics(t, func() { L().Info("dropped") })
}
