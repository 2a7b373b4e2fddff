// Package watcher renames files automatically as they appear in a directory.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains watch-mode settings.
type Config struct {
	Debounce       time.Duration // settle delay before a file is processed
	IgnorePatterns []string      // basename globs to skip
}

// DefaultConfig returns watch settings matching the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		Debounce:       2 * time.Second,
		IgnorePatterns: []string{"*.tmp", "*.part", "*.download"},
	}
}

// Summary contains stats from one watch session.
type Summary struct {
	Processed int
	Renamed   int
	Skipped   int
	Errors    int
	Duration  time.Duration
}

// FileHandler processes one settled file and reports whether it was renamed.
type FileHandler func(path string) (renamed bool, err error)

// Watcher monitors a directory and feeds settled files to the handler.
type Watcher struct {
	config    *Config
	handler   FileHandler
	fsWatcher *fsnotify.Watcher
	filter    *Filter
	debouncer *Debouncer
	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	mu        sync.Mutex
	processed int
	renamed   int
	skipped   int
	errors    int
}

// New creates a Watcher. A nil config uses defaults.
func New(cfg *Config, handler FileHandler) *Watcher {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	w := &Watcher{
		config:  cfg,
		handler: handler,
		filter:  NewFilter(cfg.IgnorePatterns),
		done:    make(chan struct{}),
	}
	w.debouncer = NewDebouncer(cfg.Debounce, w.handleSettled)
	return w
}

// Start begins watching dir. The watcher runs until Stop is called.
func (w *Watcher) Start(dir string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		w.fsWatcher.Close()
		return err
	}
	if err := w.fsWatcher.Add(absDir); err != nil {
		w.fsWatcher.Close()
		return err
	}

	w.startTime = time.Now()
	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop shuts the watcher down and returns the session summary. Pending
// debounce timers are cancelled and callbacks already in flight are drained,
// so no handler runs after Stop returns.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()
	w.debouncer.Wait()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return &Summary{
		Processed: w.processed,
		Renamed:   w.renamed,
		Skipped:   w.skipped,
		Errors:    w.errors,
		Duration:  time.Since(w.startTime),
	}
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if w.filter.Ignore(event.Name) {
				continue
			}
			w.debouncer.Add(event.Name)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errors++
			w.mu.Unlock()
		}
	}
}

// handleSettled runs once a file has stopped changing.
func (w *Watcher) handleSettled(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return // file vanished, or a new subdirectory
	}

	renamed, err := w.handler(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.processed++
	switch {
	case err != nil:
		w.errors++
	case renamed:
		w.renamed++
	default:
		w.skipped++
	}
}
