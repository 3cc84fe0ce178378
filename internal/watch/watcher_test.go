package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

type harness struct {
	runs chan struct{}
	done chan error
}

func start(t *testing.T, opts Options) *harness {
	t.Helper()

	opts.Debounce = testDebounce

	h := &harness{
		runs: make(chan struct{}, 16),
		done: make(chan error, 1),
	}

	w := New(opts, func(context.Context) error {
		h.runs <- struct{}{}
		return nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	go func() { h.done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-h.done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not become ready")
	}

	t.Cleanup(func() {
		cancel()
		<-h.done
	})

	return h
}

func (h *harness) expectRun(t *testing.T) {
	t.Helper()

	select {
	case <-h.runs:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a run")
	}
}

func (h *harness) expectQuiet(t *testing.T) {
	t.Helper()

	select {
	case <-h.runs:
		t.Fatal("unexpected run")
	case <-time.After(10 * testDebounce):
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcherDebouncesSchemaChanges(t *testing.T) {
	dir := t.TempDir()
	h := start(t, Options{Dirs: []string{dir}, Extensions: []string{".yaml", ".yml"}})

	for i := 0; i < 5; i++ {
		write(t, filepath.Join(dir, "role.yaml"), "schema: {enum: [A]}\n")
	}

	h.expectRun(t)
	h.expectQuiet(t)
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	h := start(t, Options{Dirs: []string{dir}, Extensions: []string{".yaml"}})

	write(t, filepath.Join(dir, "notes.txt"), "hello")
	h.expectQuiet(t)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	h := start(t, Options{Dirs: []string{dir}, Extensions: []string{".yaml"}})

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	h.expectRun(t)

	// Give the watcher time to register the new directories.
	time.Sleep(5 * testDebounce)

	write(t, filepath.Join(nested, "user.yaml"), "schema: {class: {}}\n")
	h.expectRun(t)
}

func TestWatcherConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "desergen.yaml")
	write(t, cfg, "schemas: [a]\n")

	h := start(t, Options{Files: []string{cfg}})

	write(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	h.expectQuiet(t)

	write(t, cfg, "schemas: [a, b]\n")
	h.expectRun(t)
}

func TestWatcherRunErrorsKeepWatching(t *testing.T) {
	dir := t.TempDir()
	calls := make(chan struct{}, 4)

	w := New(Options{Dirs: []string{dir}, Debounce: testDebounce}, func(context.Context) error {
		calls <- struct{}{}
		return assert.AnError
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()
	<-w.Ready()

	for i := 0; i < 2; i++ {
		write(t, filepath.Join(dir, "x.yaml"), "v")

		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d did not happen", i)
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}}, func(context.Context) error {
		return nil
	}, zerolog.Nop())

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch directory")
}
