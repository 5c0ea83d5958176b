package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dshills/tabby/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher posts a PluginChanged message when a watched plugin file is
// written, created or renamed over.
//
// It watches the parent directory of each file rather than the file itself,
// since many editors save by replacing the file.
type Watcher struct {
	mu sync.Mutex

	fsw     *fsnotify.Watcher
	mailbox *Mailbox
	logger  *logging.Logger

	files map[string][]int // absolute path -> plugin ids, in load order
	dirs  map[string]int   // directory -> watched files inside

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher posting to mb and starts its event loop.
func NewWatcher(mb *Mailbox, logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NullLogger
	}

	w := &Watcher{
		fsw:     fsw,
		mailbox: mb,
		logger:  logger,
		files:   make(map[string][]int),
		dirs:    make(map[string]int),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Add starts watching path on behalf of plugin id.
func (w *Watcher) Add(path string, id int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if ids, ok := w.files[abs]; ok {
		if !slices.Contains(ids, id) {
			w.files[abs] = append(ids, id)
		}
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = []int{id}
	return nil
}

// Remove stops watching path on behalf of plugin id. The file stays watched
// while other plugins loaded from it remain.
func (w *Watcher) Remove(path string, id int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	ids, ok := w.files[abs]
	if !ok {
		return nil
	}
	ids = slices.DeleteFunc(ids, func(v int) bool { return v == id })
	if len(ids) > 0 {
		w.files[abs] = ids
		return nil
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// Watching reports whether path is watched.
func (w *Watcher) Watching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	ids := slices.Clone(w.files[abs])
	w.mu.Unlock()

	for _, id := range ids {
		w.mailbox.Post(Message{
			Kind:     PluginChanged,
			PluginID: id,
			Path:     abs,
			Text:     fmt.Sprintf("plugin file changed: %s (reload with !plugin unload-id %d, !plugin load)", filepath.Base(abs), id),
		})
	}
}

// Close stops the event loop and releases the fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}
