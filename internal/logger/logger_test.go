package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{"console info", false, false, zapcore.InfoLevel},
		{"json debug", true, true, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.level))
			assert.False(t, l.Core().Enabled(tt.level-1))
		})
	}
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "abc", TruncateForLog("  abc  ", 10))
	assert.Equal(t, "ab...", TruncateForLog("abcdef", 2))
	assert.Equal(t, "éé...", TruncateForLog("éééé", 2))
	assert.Equal(t, "", TruncateForLog("abc", 0))
}

func TestRequestFields(t *testing.T) {
	fields := RequestFields("id-1", "technology", "")
	require.Len(t, fields, 2)
	assert.Equal(t, FieldRequestID, fields[0].Key)
	assert.Equal(t, "technology", fields[1].String)

	assert.Empty(t, RequestFields("", "", ""))
}

func TestWithAI(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := WithAI(zap.New(core), "gemini", "model-x")
	l.Info("call")

	entries := observed.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "gemini", ctx[FieldProvider])
	assert.Equal(t, "model-x", ctx[FieldModel])

	// nil loggers fall back to a no-op logger
	assert.NotPanics(t, func() { WithAI(nil, "", "").Info("ignored") })
}
