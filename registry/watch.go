package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to a bindings file made outside the game, e.g. by
// hand editing or by the bindings command. It watches the file's directory so
// that rename-based saves are seen.
//
// Events carries the file path once writes to it have been quiet for the
// debounce interval, so a truncate followed by a write produces one event
// after the write. The receiver calls Registry.Reload on its own goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan string
	Events  <-chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("registry: watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("registry: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("registry: watch %s: %w", path, err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("registry: watch %s: %w", dir, err)
	}

	events := make(chan string, 1)
	watcher := &Watcher{
		watcher: w,
		path:    abs,
		events:  events,
		Events:  events,
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	quiet := time.NewTimer(watchDebounce)
	quiet.Stop()
	defer quiet.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			quiet.Reset(watchDebounce)
		case <-quiet.C:
			// One pending event is enough; Drain reloads once regardless.
			select {
			case w.events <- w.path:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// Drain reloads r if any change is pending, without blocking. It is meant to
// be called from the game loop. The registry keeps its previous bindings when
// the reload fails.
func (w *Watcher) Drain(r *Registry) error {
	var (
		pending bool
		errs    []error
	)
loop:
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				break loop
			}
			pending = true
		case err, ok := <-w.Errors:
			if !ok {
				break loop
			}
			errs = append(errs, err)
		default:
			break loop
		}
	}
	if pending {
		if err := r.Reload(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
