package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a change triggers a run.
const DefaultDebounce = 200 * time.Millisecond

// RunFunc performs one full batch. Its error is logged and watching
// continues.
type RunFunc func(ctx context.Context) error

// Options selects what is watched.
type Options struct {
	// Dirs are watched recursively.
	Dirs []string
	// Files are watched individually through their parent directory.
	Files []string
	// Extensions limits which files under Dirs count as changes. Empty
	// means every file.
	Extensions []string
	// Debounce is the quiet period before a run. Zero uses
	// DefaultDebounce.
	Debounce time.Duration
}

// Watcher re-runs a batch on file changes.
type Watcher struct {
	opts   Options
	run    RunFunc
	logger zerolog.Logger
	ready  chan struct{}
}

// New creates a watcher. Paths in opts are made absolute when Run starts.
func New(opts Options, run RunFunc, logger zerolog.Logger) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	return &Watcher{
		opts:   opts,
		run:    run,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Ready is closed once every path is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It returns nil on cancellation and
// an error only when watching cannot start.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dirs, files, err := w.absPaths()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := addTree(fw, dir); err != nil {
			return err
		}
	}

	for _, file := range files {
		// Watch the directory (more reliable for editors that do atomic saves)
		if err := fw.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("watch directory of %s: %w", file, err)
		}
	}

	close(w.ready)

	w.logger.Info().
		Strs("dirs", dirs).
		Strs("files", files).
		Dur("debounce", w.opts.Debounce).
		Msg("watching for changes")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watch stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			newDir := false

			if event.Has(fsnotify.Create) && underAny(event.Name, dirs) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					newDir = true

					if err := addTree(fw, event.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

			if !newDir && !w.relevant(event, dirs, files) {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("change detected")

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}

			pending = timer.C

		case <-pending:
			pending = nil

			start := time.Now()
			if err := w.run(ctx); err != nil {
				w.logger.Error().Err(err).Msg("run failed, waiting for further changes")
				continue
			}

			w.logger.Info().Dur("took", time.Since(start)).Msg("run completed")

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}

func (w *Watcher) absPaths() (dirs, files []string, err error) {
	for _, d := range w.opts.Dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, nil, fmt.Errorf("absolute path of %s: %w", d, err)
		}

		dirs = append(dirs, abs)
	}

	for _, f := range w.opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, fmt.Errorf("absolute path of %s: %w", f, err)
		}

		files = append(files, abs)
	}

	return dirs, files, nil
}

// relevant reports whether event touches a watched file or a matching file
// below a watched directory.
func (w *Watcher) relevant(event fsnotify.Event, dirs, files []string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Clean(event.Name)
	if slices.Contains(files, name) {
		return true
	}

	if !underAny(name, dirs) {
		return false
	}

	if len(w.opts.Extensions) == 0 {
		return true
	}

	return slices.Contains(w.opts.Extensions, filepath.Ext(name))
}

// addTree watches dir and every directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return fw.Add(p)
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	return nil
}

func underAny(name string, dirs []string) bool {
	for _, dir := range dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
