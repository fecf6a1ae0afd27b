// Package watcher provides file system watching with debouncing for the
// user command definitions file.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/pubsub"
)

// Watcher monitors the definitions file for changes and publishes
// events to its broker. The payload of each event is the watched path.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[string]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a new definitions file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[string](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker change events are published to. Subscribe
// before calling Start to avoid missing early events.
func (w *Watcher) Broker() *pubsub.Broker[string] {
	return w.broker
}

// Start begins watching the directory containing the definitions file.
// Watching the directory rather than the file itself is what catches
// editors that save by renaming a temp file over the target.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	log.Debug(log.CatWatcher, "watching definitions file", "path", w.path, "debounce", w.debounce)
	go w.loop()

	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	w.broker.Close()
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Only react to events on the definitions file
			if !w.isRelevantEvent(event) {
				continue
			}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				w.publish()
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// publish reports the debounced outcome. A save that rewrote the file
// and a delete both arrive as a burst of events, so the file's state
// after the burst settles is what decides the event type.
func (w *Watcher) publish() {
	if _, err := os.Stat(w.path); err != nil {
		log.Debug(log.CatWatcher, "definitions file removed", "path", w.path)
		w.broker.Publish(pubsub.EventRemoved, w.path)
		return
	}
	log.Debug(log.CatWatcher, "definitions file changed", "path", w.path)
	w.broker.Publish(pubsub.EventChanged, w.path)
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	return filepath.Base(event.Name) == filepath.Base(w.path)
}
