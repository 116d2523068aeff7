package dashboard

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/schema"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultDebounce is how long the watcher waits for writes to settle before reloading.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc is called after every reload attempt made by a Watcher.
type ReloadFunc func(applied bool, err error)

// Watcher reloads a report file into an App whenever the file changes.
type Watcher struct {
	app      *App
	path     string
	debounce time.Duration
	onReload ReloadFunc
}

// NewWatcher creates a watcher for the report at path.
// The directory is watched rather than the file so editors that replace the file are seen.
func NewWatcher(app *App, path string, onReload ReloadFunc) *Watcher {
	return &Watcher{
		app:      app,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onReload: onReload,
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return goerr.Wrap(err, "failed to watch report directory", goerr.V("dir", dir))
	}

	logger := ctxlog.From(ctx)
	logger.Info("Watching report file", "path", w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return goerr.New("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return goerr.New("watcher errors channel closed")
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}

// reload loads the file through the App token sequence.
func (w *Watcher) reload(ctx context.Context) {
	applied, err := w.app.Load(w.path, func() (*schema.TechnicalDebtReport, error) {
		return core.LoadReportFile(w.path)
	})

	logger := ctxlog.From(ctx)
	if err != nil {
		logger.Warn("Failed to reload report", "path", w.path, "error", err)
	} else {
		logger.Info("Reloaded report", "path", w.path, "applied", applied)
	}
	if w.onReload != nil {
		w.onReload(applied, err)
	}
}
