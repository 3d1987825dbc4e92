package static

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jsamuelsen11/company-directory/internal/platform/debounce"
)

// DefaultWatchDebounce collapses the burst of events an editor emits on save.
const DefaultWatchDebounce = 200 * time.Millisecond

// Watcher calls onChange after the watched file is written, created, or
// replaced. The parent directory is watched so atomic rename-on-save is seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	target   string
	onChange func()
	debounce *debounce.Debouncer
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a Watcher for path. A non-positive quiet period uses
// DefaultWatchDebounce.
func NewWatcher(path string, quiet time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	if quiet <= 0 {
		quiet = DefaultWatchDebounce
	}

	return &Watcher{
		watcher:  fw,
		target:   filepath.Clean(abs),
		onChange: onChange,
		debounce: debounce.New(quiet),
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking and idempotent.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	dir := filepath.Dir(w.target)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.running = true

	w.logger.InfoContext(ctx, "watching companies file", slog.String("path", w.target))

	go w.run(ctx)
	return nil
}

// Stop ends the event loop, drops any pending reload, and releases the
// underlying watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.debounce.Cancel()

	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnContext(ctx, "file watcher error",
				slog.String("path", w.target),
				slog.Any("error", err),
			)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.DebugContext(ctx, "companies file changed",
		slog.String("path", w.target),
		slog.String("op", event.Op.String()),
	)
	w.debounce.Debounce(w.onChange)
}
