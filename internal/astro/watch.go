package astro

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a catalog file loaded and reloads it when the file changes.
// A file that fails to parse or to pass the check leaves the last good
// catalog in place.
type Watcher struct {
	path    string
	check   func(*Catalog) error
	logger  *log.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
	started bool

	mu      sync.RWMutex
	current *Catalog
	reloads int
}

// NewWatcher loads the catalog at path and prepares to watch it. check, when
// not nil, must accept the initial catalog and every reloaded one. A nil
// logger discards reload messages.
func NewWatcher(path string, logger *log.Logger, check func(*Catalog) error) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("astro: watch %s: %w", path, err)
	}
	c, err := readChecked(abs, check)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("astro: watch %s: %w", path, err)
	}
	return &Watcher{
		path:    abs,
		check:   check,
		logger:  logger,
		watcher: fw,
		done:    make(chan struct{}),
		current: c,
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are picked up.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("astro: watch %s: %w", w.path, err)
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the reload loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
}

// Current returns the latest valid catalog.
func (w *Watcher) Current() *Catalog {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Reloads returns how many times the catalog was replaced.
func (w *Watcher) Reloads() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reloads
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce bursts of writes from a single save.
	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watch error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	c, err := readChecked(w.path, w.check)
	if err != nil {
		w.logger.Warn("catalog reload failed, keeping previous", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.current = c
	w.reloads++
	w.mu.Unlock()

	w.logger.Info("catalog reloaded", "path", w.path, "objects", len(c.Objects()), "telescopes", len(c.TelescopesByPower()))
}

func readChecked(path string, check func(*Catalog) error) (*Catalog, error) {
	c, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(c); err != nil {
			return nil, fmt.Errorf("astro: catalog %s rejected: %w", path, err)
		}
	}
	return c, nil
}
