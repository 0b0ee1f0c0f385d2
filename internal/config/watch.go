package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"gradnet/internal/logging"
)

// debounceWindow coalesces the bursts of write events editors emit for
// a single save.
const debounceWindow = 250 * time.Millisecond

// Watch reloads the config file whenever it changes on disk and calls
// onChange with the fresh config. The watch runs until ctx is
// cancelled. The parent directory is watched rather than the file so
// atomic rename-style saves are caught too.
func Watch(ctx context.Context, path string, onChange func(*UserConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		fire := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceWindow, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Boot("config watch error: %v", err)
			case <-fire:
				cfg, err := Load(path)
				if err != nil {
					logging.Boot("config reload failed: %v", err)
					continue
				}
				if err := logging.ReloadConfig(); err != nil {
					logging.Boot("logging reload failed: %v", err)
				}
				logging.Boot("config reloaded from %s", path)
				if onChange != nil {
					onChange(cfg)
				}
			}
		}
	}()

	return nil
}
