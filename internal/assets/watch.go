package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay groups the burst of write events an asset build emits
// while replacing the manifest file.
const debounceDelay = 200 * time.Millisecond

// Watch reloads the manifest whenever its file changes and invokes
// onReload after each successful swap. It blocks until ctx is done.
// The watch is on the parent directory because builds typically replace
// the file via rename, which drops a watch on the file itself.
func (m *Manifest) Watch(ctx context.Context, log *slog.Logger, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(m.path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("asset manifest watch error", slog.Any("error", err))

		case <-fire:
			if err := m.Reload(); err != nil {
				log.Error("asset manifest reload failed", slog.Any("error", err))
				continue
			}
			log.Info("asset manifest reloaded", slog.String("path", m.path))
			if onReload != nil {
				onReload()
			}
		}
	}
}
