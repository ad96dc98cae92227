package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReportsWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "cases.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("cases: []\n"), 0o644))

	changed := make(chan []string, 4)
	w, err := New([]string{watched}, 20*time.Millisecond, func(_ context.Context, files []string) {
		changed <- files
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("cases: [{matcher: ToBeLeft}]\n"), 0o644))

	select {
	case files := <-changed:
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, []string{abs}, files)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Batches, 1)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "a.yaml")}, 0, func(context.Context, []string) {})
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounceDur)
	w.Stop()
}

func TestWatcher_TinyDebounce(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "a.yaml")}, time.Nanosecond, func(context.Context, []string) {})
	require.NoError(t, err)
	assert.Equal(t, minTick, w.tickInterval())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Stop()
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "a.yaml")}, 0, func(context.Context, []string) {})
	assert.Error(t, err)
}
