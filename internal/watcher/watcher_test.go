package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snova-cli/snova/internal/pubsub"
	"github.com/snova-cli/snova/internal/watcher"
)

func startWatcher(t *testing.T, path string) (*watcher.Watcher, <-chan pubsub.Event[string]) {
	t.Helper()

	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	return w, events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "commands.yaml")
	err := os.WriteFile(defsPath, []byte("commands: []"), 0o644)
	require.NoError(t, err, "failed to create test file")

	_, events := startWatcher(t, defsPath)

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(defsPath, []byte(fmt.Sprintf("# rev %d\ncommands: []", i)), 0o644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	// Should receive exactly one notification
	select {
	case evt := <-events:
		assert.Equal(t, pubsub.EventChanged, evt.Type)
		assert.Equal(t, defsPath, evt.Payload)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	// No second notification should come quickly
	select {
	case <-events:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
		// Expected - no second notification
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "commands.yaml")
	otherPath := filepath.Join(dir, "other.txt")
	err := os.WriteFile(defsPath, []byte("commands: []"), 0o644)
	require.NoError(t, err, "failed to create defs file")
	// Pre-create the other file so writes to it are just Write events
	err = os.WriteFile(otherPath, []byte("initial"), 0o644)
	require.NoError(t, err, "failed to create other file")

	_, events := startWatcher(t, defsPath)

	// Write to unrelated file (not Create, since it already exists)
	err = os.WriteFile(otherPath, []byte("other content"), 0o644)
	require.NoError(t, err, "failed to write other file")

	select {
	case <-events:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(100 * time.Millisecond):
		// Expected - no notification for unrelated file
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "commands.yaml")
	err := os.WriteFile(defsPath, []byte("commands: []"), 0o644)
	require.NoError(t, err, "failed to create defs file")

	_, events := startWatcher(t, defsPath)

	require.NoError(t, os.Remove(defsPath), "failed to remove defs file")

	select {
	case evt := <-events:
		assert.Equal(t, pubsub.EventRemoved, evt.Type)
		assert.Equal(t, defsPath, evt.Payload)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected removal notification but got timeout")
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	// Editors often save by writing a temp file and renaming it over
	// the target. That must show up as a change, not a removal.
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "commands.yaml")
	tmpPath := filepath.Join(dir, "commands.yaml.tmp")
	err := os.WriteFile(defsPath, []byte("commands: []"), 0o644)
	require.NoError(t, err, "failed to create defs file")

	_, events := startWatcher(t, defsPath)

	err = os.WriteFile(tmpPath, []byte("# edited\ncommands: []"), 0o644)
	require.NoError(t, err, "failed to create temp file")
	require.NoError(t, os.Rename(tmpPath, defsPath), "failed to rename over defs file")

	select {
	case evt := <-events:
		assert.Equal(t, pubsub.EventChanged, evt.Type)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification for atomic replace")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	defsPath := filepath.Join(dir, "commands.yaml")
	err := os.WriteFile(defsPath, []byte("commands: []"), 0o644)
	require.NoError(t, err, "failed to create test file")

	w, err := watcher.New(watcher.Config{
		Path:        defsPath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")

	require.NoError(t, w.Start(), "failed to start watcher")

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		err := w.Stop()
		assert.NoError(t, err, "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
		// Expected - stop completed successfully
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestDefaultConfig(t *testing.T) {
	path := "/home/user/.config/snova/commands.yaml"
	cfg := watcher.DefaultConfig(path)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDur)
}
