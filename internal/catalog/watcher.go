package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called after a watcher-driven catalog replacement with the
// new record count.
type EventCallback func(count int)

// Watch starts an fsnotify watcher on the catalog file's directory and
// reloads the store whenever the file changes, until ctx is cancelled.
// Watching the directory rather than the file itself survives editors and
// deploy tools that replace the file via rename. Reload events are debounced
// and a content checksum skips reloads when nothing actually changed.
func Watch(ctx context.Context, store *Store, path string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", path))

	var lastChecksum string

	// reloadTimer debounces bursts of write events into one reload.
	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			records, checksum, loadErr := LoadFile(path)
			if loadErr != nil {
				logger.Warn("watcher: reload failed", slog.String("error", loadErr.Error()))
				continue
			}
			if checksum == lastChecksum {
				logger.Debug("watcher: content unchanged, skipping")
				continue
			}
			lastChecksum = checksum
			store.Replace(records)
			logger.Info("watcher: catalog reloaded", slog.Int("records", len(records)))
			if cb != nil {
				cb(len(records))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
