package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.sugar)
	assert.NotNil(t, logger.Zap())
}

func TestNew_ProductionEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	logger := New()
	assert.NotNil(t, logger)
	assert.False(t, logger.Zap().Core().Enabled(zap.DebugLevel))
}

func TestLogger_Formatting(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	base := zap.New(core)
	logger := &Logger{base: base, sugar: base.Sugar()}

	logger.Info("User %s enrolled in course %d", "john", 12)
	logger.Warn("Warning: %s count is %d", "items", 5)
	logger.Error("Failed to process request %d: %s", 404, "not found")
	logger.Debug("debug %v", true)

	entries := recorded.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "User john enrolled in course 12", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "Failed to process request 404: not found", entries[2].Message)
}

func TestLogger_With(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	base := zap.New(core)
	logger := (&Logger{base: base, sugar: base.Sugar()}).With("request_id", "abc")

	logger.Info("handled")

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Info("discarded %d", 1)
	logger.Error("discarded")
	assert.NotNil(t, logger)
}
