package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher keeps the latest Registry for a definitions file and reloads
// it when the file changes. A failed reload is logged and the previous
// registry stays in place.
type Watcher struct {
	path     string
	opts     []Option
	logger   *zap.Logger
	debounce time.Duration

	mu       sync.RWMutex
	current  *Registry
	onReload func(*Registry)

	watcher    *fsnotify.Watcher
	isWatching bool
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewWatcher loads the definitions file once and returns a Watcher for it.
func NewWatcher(path string, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	reg, err := Load(abs, opts...)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:     abs,
		opts:     opts,
		logger:   logger,
		debounce: defaultDebounce,
		current:  reg,
	}, nil
}

// Current returns the most recently loaded registry.
func (w *Watcher) Current() *Registry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnReload registers a callback invoked after every successful reload.
func (w *Watcher) OnReload(fn func(*Registry)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Reload loads the definitions file again. On error the current
// registry is kept and the error is returned.
func (w *Watcher) Reload() error {
	reg, err := Load(w.path, w.opts...)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.current = reg
	fn := w.onReload
	w.mu.Unlock()

	if fn != nil {
		fn(reg)
	}
	return nil
}

// Start watches the directory of the definitions file. The directory is
// watched rather than the file so that editors replacing the file on
// save are still noticed.
func (w *Watcher) Start() error {
	if w.isWatching {
		return errors.New("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}

	w.watcher = watcher
	w.done = make(chan struct{})
	w.isWatching = true
	w.wg.Add(1)
	go w.watchLoop(watcher, w.done)
	return nil
}

// Stop ends watching and waits for a pending reload to settle; no
// reload happens after Stop returns. It is safe to call Stop on a
// watcher that was never started.
func (w *Watcher) Stop() error {
	if !w.isWatching {
		return nil
	}
	w.isWatching = false
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event, done)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event, done <-chan struct{}) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	// editors often write in several steps
	select {
	case <-done:
		return
	case <-time.After(w.debounce):
	}
	if err := w.Reload(); err != nil {
		w.logger.Warn("keeping previous definitions", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("definitions reloaded", zap.String("path", w.path))
}
