package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsSilent(t *testing.T) {
	Reset()
	assert.False(t, IsDebugMode())
	for _, c := range AllCategories {
		assert.False(t, IsCategoryEnabled(c), c)
		assert.False(t, Get(c).Core().Enabled(zapcore.ErrorLevel), c)
	}
}

func TestSetLogger_Categories(t *testing.T) {
	t.Cleanup(Reset)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core), Options{Categories: map[string]bool{"diff": false}})

	assert.True(t, IsDebugMode())
	assert.True(t, IsCategoryEnabled(CategoryMatcher))
	assert.False(t, IsCategoryEnabled(CategoryDiff))

	Matcher().Debug("verdict", zap.Bool("pass", true))
	Diff().Debug("ignored")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "matcher", entries[0].LoggerName)
	assert.Equal(t, "verdict", entries[0].Message)
	assert.Equal(t, true, entries[0].ContextMap()["pass"])
}

func TestGet_Cached(t *testing.T) {
	t.Cleanup(Reset)
	core, _ := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core), Options{})
	assert.Same(t, Get(CategoryCLI), Get(CategoryCLI))
}

func TestInitialize(t *testing.T) {
	t.Cleanup(Reset)

	require.NoError(t, Initialize(Options{DebugMode: false}))
	assert.False(t, IsDebugMode())

	require.NoError(t, Initialize(Options{DebugMode: true, Level: "warn", Format: "json"}))
	assert.True(t, IsDebugMode())
	assert.True(t, Decode().Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Decode().Core().Enabled(zapcore.InfoLevel))

	assert.Error(t, Initialize(Options{DebugMode: true, Format: "xml"}))
	assert.Error(t, Initialize(Options{DebugMode: true, Level: "loud"}))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
