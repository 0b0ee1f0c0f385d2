package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *UserConfig, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *UserConfig) {
		select {
		case changed <- cfg:
		default:
		}
	}))

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light"}`), 0644))

	select {
	case cfg := <-changed:
		assert.Equal(t, "light", cfg.GetTheme())
	case <-time.After(5 * time.Second):
		t.Fatal("config change never observed")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *UserConfig, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *UserConfig) {
		select {
		case changed <- cfg:
		default:
		}
	}))

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))

	select {
	case <-changed:
		t.Fatal("sibling write must not trigger a reload")
	case <-time.After(debounceWindow * 3):
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, Watch(ctx, path, nil))
	cancel()

	// Writes after cancel must not panic or leak; nothing to assert
	// beyond clean completion.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light"}`), 0644))
	time.Sleep(debounceWindow * 2)
}
