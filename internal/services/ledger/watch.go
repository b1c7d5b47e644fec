package ledger

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/hydration-tui/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// watcher reloads the ledger when the database file is written by another
// process, such as the add subcommand running next to the TUI.
type watcher struct {
	fs       *fsnotify.Watcher
	dbName   string
	reload   func()
	stopChan chan struct{}
	done     chan struct{}

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// Watch starts watching the directory holding dbPath. SQLite in WAL mode
// writes to the "-wal" sibling, so every file sharing the database name
// as prefix counts.
func (s *Service) Watch(dbPath string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	w := &watcher{
		fs:       fsw,
		dbName:   filepath.Base(dbPath),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	w.reload = func() {
		if _, err := s.Reload(context.Background()); err != nil {
			logger.Warn("failed to reload drink history", "error", err)
			s.sendEvent(Event{Type: EventError, Error: err})
		}
	}

	s.mu.Lock()
	old := s.watch
	s.watch = w
	s.mu.Unlock()
	if old != nil {
		if err := old.close(); err != nil {
			logger.Error("failed to close previous watcher", "error", err)
		}
	}

	go w.loop(s)
	return nil
}

// matches reports whether name is the database file or one of its journals.
func (w *watcher) matches(name string) bool {
	return strings.HasPrefix(filepath.Base(name), w.dbName)
}

// loop handles file system events with debouncing.
func (w *watcher) loop(s *Service) {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if !w.matches(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mu.Lock()
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.reload)
				w.mu.Unlock()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

func (w *watcher) close() error {
	close(w.stopChan)

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done
	return err
}
