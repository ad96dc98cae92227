package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"outcomematch/internal/config"
	"outcomematch/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("os/signal.loop"))
}

// syncBuffer is written by the watch goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfigPath, "OUTCOMEMATCH_COLOR", "NO_COLOR", "OUTCOMEMATCH_DEBUG",
		"OUTCOMEMATCH_LOG_LEVEL", "OUTCOMEMATCH_MAX_DEPTH"} {
		t.Setenv(k, "")
	}
	t.Cleanup(logging.Reset)
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const passing = `cases:
  - name: left
    matcher: ToEqualLeft
    received: {_tag: Left, left: 1}
    args: [1]
`

const failing = `cases:
  - name: right
    matcher: ToEqualRight
    received: {_tag: Right, right: {a: 1, b: 2}}
    args: [{a: 1, b: 3}]
`

func TestRun_Passing(t *testing.T) {
	cleanEnv(t)
	path := writeFixture(t, t.TempDir(), "pass.yaml", passing)

	code, out, errOut := run(t, "run", path)
	assert.Equal(t, 0, code)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "PASS  "+path+": left")
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestRun_Failing(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	pass := writeFixture(t, dir, "pass.yaml", passing)
	fail := writeFixture(t, dir, "fail.yaml", failing)

	code, out, errOut := run(t, "run", "--quiet", pass, fail)
	assert.Equal(t, 1, code)
	assert.Empty(t, errOut)
	assert.NotContains(t, out, "PASS")
	assert.Contains(t, out, "FAIL  "+fail+": right")
	assert.Contains(t, out, "    expect(received).ToEqualRight(expectedRight)")
	assert.Contains(t, out, "    -   \"b\": 3,")
	assert.Contains(t, out, "1 passed, 1 failed")
}

func TestRun_LoadError(t *testing.T) {
	cleanEnv(t)
	code, _, errOut := run(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: read fixture")
}

func TestRun_Color(t *testing.T) {
	cleanEnv(t)
	path := writeFixture(t, t.TempDir(), "pass.yaml", passing)

	_, out, _ := run(t, "run", "--color", path)
	assert.Contains(t, out, "\x1b[")

	_, out, _ = run(t, "run", path)
	assert.NotContains(t, out, "\x1b[")
}

func TestRun_ConfigFile(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  indent: 9\n"), 0o644))

	code, _, errOut := run(t, "--config", cfgPath, "run", writeFixture(t, dir, "pass.yaml", passing))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid config")
}

func TestDiff(t *testing.T) {
	cleanEnv(t)

	code, out, _ := run(t, "diff", "--inline", "--mode", "subset", "{a: 1}", "{a: 1, b: 2}")
	assert.Equal(t, 0, code)
	assert.Equal(t, "No difference found.\n", out)

	code, out, _ = run(t, "diff", "--inline", "{a: 1}", "{a: 2}")
	assert.Equal(t, 1, code)
	assert.Equal(t, "- Expected  - 1\n+ Received  + 1\n\n  Object {\n-   \"a\": 1,\n+   \"a\": 2,\n  }\n", out)

	code, _, errOut := run(t, "diff", "--inline", "--mode", "fuzzy", "1", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown comparison mode")
}

func TestDiff_Files(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	e := writeFixture(t, dir, "e.json", `{"a": [1, 2]}`)
	r := writeFixture(t, dir, "r.json", `{"a": [1, 2]}`)

	code, out, _ := run(t, "diff", "--mode", "strict", e, r)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No difference found.")
}

func TestWatch(t *testing.T) {
	cleanEnv(t)
	path := writeFixture(t, t.TempDir(), "cases.yaml", passing)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr syncBuffer
	done := make(chan int)
	go func() {
		done <- execute(ctx, []string{"watch", path}, &stdout, &stderr)
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for !strings.Contains(stdout.String(), want) {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %q in:\n%s", want, stdout.String())
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitFor("1 passed, 0 failed")
	// Give the watcher time to register before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(failing), 0o644))
	waitFor("0 passed, 1 failed")
	assert.Contains(t, stdout.String(), "changed: ")

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
