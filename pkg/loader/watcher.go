package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/eqtree/pkg/logging"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// DefaultDebounce coalesces bursts of writes from editors and atomic saves.
const DefaultDebounce = 200 * time.Millisecond

// Event is delivered after the watched file settles. Roots is the freshly
// loaded forest; Err is set when the file could not be read or parsed.
type Event struct {
	Path  string
	Roots []*tree.Node
	Err   error
}

// Watcher reloads a hierarchy file whenever it changes on disk.
//
// The file's directory is watched rather than the file itself so that
// rename-based saves keep being observed.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	log      *logging.Logger
	debounce time.Duration

	events chan Event

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	closeMu sync.Once
}

// WatcherOption customises a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger attaches a logger for watch errors.
func WithLogger(log *logging.Logger) WatcherOption {
	return func(w *Watcher) { w.log = log }
}

// NewWatcher creates a watcher for path. Call Start to begin delivering
// events.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: DefaultDebounce,
		events:   make(chan Event, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the reload channel. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start watches the file's directory until ctx is cancelled or Close is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.loop(ctx)
	return nil
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	var err error
	w.closeMu.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer func() {
		w.Close()
		w.mu.Lock()
		close(w.events)
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// chmod alone does not change content
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf(err, "file watcher error")
		}
	}
}

// schedule (re)arms the debounce timer; the reload fires once the file has
// been quiet for the debounce interval.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	roots, err := Load(w.path)
	if err != nil {
		w.log.With("path", w.path).Warnf(err, "reload failed")
	}
	ev := Event{Path: w.path, Roots: roots, Err: err}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// Keep only the newest pending event.
	select {
	case <-w.events:
	default:
	}
	select {
	case w.events <- ev:
	default:
	}
}
