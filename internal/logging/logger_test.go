package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// These tests share the package-level logging state, so none of them
// run in parallel.

func writeLoggingConfig(t *testing.T, dir, level string) {
	t.Helper()
	data := fmt.Sprintf(`{"logging":{"debug_mode":true,"level":%q}}`, level)
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestReloadConfigUpdatesLevel(t *testing.T) {
	dir := t.TempDir()
	writeLoggingConfig(t, dir, "warn")

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	if currentLevel() != LevelWarn {
		t.Fatalf("expected warn level, got %d", currentLevel())
	}

	writeLoggingConfig(t, dir, "debug")
	if err := ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	if currentLevel() != LevelDebug {
		t.Errorf("expected debug level after reload, got %d", currentLevel())
	}
}

// The config watcher reloads from its own goroutine while the TUI
// keeps logging; level reads and reload writes must not race.
func TestReloadConcurrentWithLogging(t *testing.T) {
	dir := t.TempDir()
	writeLoggingConfig(t, dir, "debug")

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	var wg sync.WaitGroup
	wg.Add(2)

	path := filepath.Join(dir, "config.json")
	go func() {
		defer wg.Done()
		levels := []string{"info", "warn", "debug"}
		for i := 0; i < 50; i++ {
			data := fmt.Sprintf(`{"logging":{"debug_mode":true,"level":%q}}`, levels[i%len(levels)])
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Errorf("failed to write config: %v", err)
				return
			}
			if err := ReloadConfig(); err != nil {
				t.Errorf("ReloadConfig failed: %v", err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		l := Get(CategoryUI)
		for i := 0; i < 50; i++ {
			l.Debug("tick %d", i)
			l.Info("tick %d", i)
			l.Warn("tick %d", i)
		}
	}()

	wg.Wait()
}
