package config

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events an editor save produces
// (truncate, write, chmod, rename) into a single reload.
const watchDebounce = 200 * time.Millisecond

// Watcher invokes a callback when the config file changes on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching path and calls onChange, debounced, after each
// change. The callback runs on the watcher goroutine and must be safe to
// call from there. The parent directory is watched rather than the file
// itself: editors typically replace the file by rename, which would
// silently detach a direct watch.
func Watch(path string, log *slog.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	go w.loop(filepath.Clean(path), log, onChange)
	return w, nil
}

// Close stops the watcher. Pending debounced callbacks are dropped.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop(path string, log *slog.Logger, onChange func()) {
	defer close(w.done)

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("config file changed", "op", ev.Op.String())
			if pending == nil {
				pending = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				pending.Reset(watchDebounce)
			}

		case <-fire:
			pending = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn("config watch error", "error", err)
		}
	}
}
