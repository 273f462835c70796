package filesystem

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 100 * time.Millisecond

// Watcher monitors the export directory for report files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    *zap.Logger
	Dir       string
	Events    chan string // Carries the changed report path
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a new Watcher for dir. Subdirectories are not watched.
func NewWatcher(dir string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		Dir:       dir,
		Events:    make(chan string, 10), // Buffered to prevent blocking
		done:      make(chan struct{}),
	}

	go w.startLoop()

	return w, nil
}

// Done is closed once the watcher has been closed.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Close stops the watcher and releases resources. It is safe to call twice.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
	})
}

// Next blocks until a report changes or the watcher closes.
func (w *Watcher) Next() (string, bool) {
	select {
	case path := <-w.Events:
		return path, true
	case <-w.done:
		return "", false
	}
}

func (w *Watcher) startLoop() {
	var timer *time.Timer

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !IsReportFile(filepath.Base(event.Name)) {
				continue
			}

			// Ignore CHMOD events which can be noisy
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			name := event.Name
			timer = time.AfterFunc(debounceDuration, func() {
				select {
				case w.Events <- name:
				case <-w.done:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", zap.String("dir", w.Dir), zap.Error(err))
		}
	}
}
