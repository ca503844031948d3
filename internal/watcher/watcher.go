// Package watcher reloads configuration when its files change on disk.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher observes the configuration directory and reports which
// files changed. Editors that write via a temp file and rename are
// handled by watching the directory rather than the files themselves.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    *slog.Logger
	dir       string
	files     map[string]struct{}

	changes chan string
	done    chan struct{}

	debounceMu sync.Mutex
	debounce   map[string]*time.Timer
}

// New creates a watcher for the named files, which must all live in
// dir.
func New(dir string, files []string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]struct{}, len(files))
	for _, f := range files {
		watched[filepath.Base(f)] = struct{}{}
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		dir:       dir,
		files:     watched,
		changes:   make(chan string, 8),
		done:      make(chan struct{}),
	}, nil
}

// Changes returns the channel carrying the paths of changed files.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Start begins watching the configuration directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return err
	}
	w.debounce = make(map[string]*time.Timer)
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers atomic writes: temp file renamed over the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if _, ok := w.files[filepath.Base(event.Name)]; !ok {
		return
	}
	w.debounceEvent(event.Name)
}

// debounceEvent coalesces the burst of events a single save produces.
func (w *Watcher) debounceEvent(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()

		select {
		case w.changes <- path:
		case <-w.done:
		}
	})
}
