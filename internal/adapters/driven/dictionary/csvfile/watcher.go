package csvfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
	"github.com/edstats-labs/uisdata-cli/internal/logger"
)

// DebounceInterval coalesces the event bursts editors and atomic-save
// tools produce for a single logical change.
const DebounceInterval = 250 * time.Millisecond

// Watcher reloads the dictionary whenever its file changes and hands the
// rebuilt catalog to a callback. The catalog itself stays immutable; a
// change produces a new catalog value.
type Watcher struct {
	loader   *Loader
	onReload func(*domain.Catalog)
	onError  func(error)
}

// NewWatcher creates a watcher over the loader's file. onReload receives
// every successfully rebuilt catalog; onError, if non-nil, receives
// reload failures (a broken intermediate save keeps the previous catalog
// in place).
func NewWatcher(loader *Loader, onReload func(*domain.Catalog), onError func(error)) *Watcher {
	return &Watcher{loader: loader, onReload: onReload, onError: onError}
}

// Run watches until the context is cancelled. The dictionary's parent
// directory is watched rather than the file itself so that atomic
// rename-over saves keep being observed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.loader.Path())
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("Watching dictionary %s", w.loader.Path())

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.loader.Path()) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
			} else {
				timer.Reset(DebounceInterval)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	records, err := w.loader.Load(ctx)
	if err != nil {
		w.fail(fmt.Errorf("reload dictionary: %w", err))
		return
	}
	catalog, err := domain.NewCatalog(records)
	if err != nil {
		w.fail(fmt.Errorf("rebuild catalog: %w", err))
		return
	}
	logger.Info("Dictionary reloaded: %d record(s)", catalog.Len())
	w.onReload(catalog)
}

func (w *Watcher) fail(err error) {
	logger.Warn("Dictionary watch: %v", err)
	if w.onError != nil {
		w.onError(err)
	}
}
