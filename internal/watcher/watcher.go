// Package watcher watches HDL source trees for changes so edits can be
// syntax-checked without a manual rebuild loop.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config controls which files trigger a rebuild.
type Config struct {
	// Dir is the root directory to watch, recursively.
	Dir string

	// Extensions are the file suffixes of interest.
	Extensions []string

	// IgnoreDirs are directory names skipped entirely. Build output
	// must be here or every run retriggers itself.
	IgnoreDirs []string

	// Debounce coalesces the event bursts editors produce on save.
	Debounce time.Duration
}

// DefaultConfig watches the usual HDL sources and constraints.
func DefaultConfig(dir string) *Config {
	return &Config{
		Dir:        dir,
		Extensions: []string{".v", ".sv", ".svh", ".vh", ".vhd", ".xdc"},
		IgnoreDirs: []string{".git", "build", "build-ip", ".Xil"},
		Debounce:   250 * time.Millisecond,
	}
}

// Watcher emits a debounced event per changed HDL source file.
type Watcher struct {
	config  *Config
	watcher *fsnotify.Watcher
	changes chan string
	errors  chan error
	done    chan struct{}

	mu      sync.Mutex
	running bool
	pending map[string]*time.Timer
}

// New creates a watcher for the given config.
func New(config *Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:  config,
		watcher: fsWatcher,
		changes: make(chan string, 64),
		errors:  make(chan error, 8),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. It returns immediately; events arrive on
// Changes until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addRecursive(w.config.Dir); err != nil {
		return err
	}

	go w.loop(ctx)
	return nil
}

// Stop stops the watcher and releases its OS handles.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}

// Changes returns the channel of changed file paths.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), "build-") {
			return filepath.SkipDir
		}
		for _, name := range w.config.IgnoreDirs {
			if info.Name() == name {
				return filepath.SkipDir
			}
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if !w.interesting(event.Name) {
		return
	}
	w.debounce(event.Name)
}

func (w *Watcher) interesting(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.config.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.changes <- path:
		default:
			// Channel full, drop; the next save retriggers.
		}
	})
}
