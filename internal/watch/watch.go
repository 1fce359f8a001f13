// Package watch reruns the audit when matching files under the scan root
// change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before an audit
// is triggered.
const DefaultDebounce = 600 * time.Millisecond

// Watcher tracks every directory below a root.
type Watcher struct {
	root     string
	ext      string
	debounce time.Duration
	logf     func(string, ...any)

	mu    sync.Mutex
	paths map[string]struct{}
	fsw   *fsnotify.Watcher
}

// New creates a watcher for files ending with ext below root. A zero debounce
// uses DefaultDebounce.
func New(root, ext string, debounce time.Duration, logf func(string, ...any)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		root:     root,
		ext:      ext,
		debounce: debounce,
		logf:     logf,
		paths:    make(map[string]struct{}),
		fsw:      fsw,
	}
	if err := w.addWatchTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Watched returns the number of directories being watched.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.paths)
}

// Run calls onChange after each burst of relevant events until ctx is done or
// onChange fails. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.debugf("watch: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.debugf("watch error: %v", err)
		case <-timer.C:
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether an event can change the audit outcome. New
// directories are registered as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchTree(event.Name); err != nil {
				w.debugf("watch add failed for %s: %v", event.Name, err)
			}
			return true
		}
	}
	if strings.HasSuffix(event.Name, w.ext) {
		return true
	}
	// A removed or renamed directory takes its files with it.
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.mu.Lock()
		_, wasDir := w.paths[event.Name]
		delete(w.paths, event.Name)
		w.mu.Unlock()
		return wasDir
	}
	return false
}

func (w *Watcher) addWatchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.addWatchDir(path)
	})
}

func (w *Watcher) addWatchDir(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[path]; ok {
		return nil
	}
	if err := w.fsw.Add(path); err != nil {
		return err
	}
	w.paths[path] = struct{}{}
	return nil
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
