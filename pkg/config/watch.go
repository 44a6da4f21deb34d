package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fortio.org/log"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// settle is how long Watch waits after the last change before reloading,
// so that editors writing in several steps produce one reload.
const settle = 150 * time.Millisecond

// Watch reloads the system file at path whenever it changes and sends each
// valid result on out. Invalid files are logged and skipped. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, out chan<- *System) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", path, err)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory: editors often replace the file instead of writing it.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	log.Infof("Watching %s for changes", path)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.LogVf("Config event %s", ev)
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("Watcher error: %v", err)
		case <-timer.C:
			sys, err := Load(path)
			if err != nil {
				log.Warnf("Ignoring invalid system file: %v", err)
				continue
			}
			log.Infof("Reloaded %s (%d bodies)", path, len(sys.Bodies))
			select {
			case out <- sys:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
