package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_HandleFsEvent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	w := NewWatcher(store)

	dir := filepath.Dir(store.Path())
	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{"write config", store.Path(), fsnotify.Write, true},
		{"create config", store.Path(), fsnotify.Create, true},
		{"rename config", store.Path(), fsnotify.Rename, true},
		{"remove config", store.Path(), fsnotify.Remove, true},
		{"chmod config", store.Path(), fsnotify.Chmod, false},
		{"temp file", filepath.Join(dir, "config.toml.123.tmp"), fsnotify.Create, false},
		{"other file", filepath.Join(dir, "selections.db"), fsnotify.Write, false},
		{"unclean path", filepath.Join(dir, ".", ConfigFileName), fsnotify.Write, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("picker.debounce_ms", 300))

	w := NewWatcher(store)
	w.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("[picker]\ndebounce_ms = 50\n"), 0600))

	select {
	case r := <-reloads:
		require.NoError(t, r.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after external write")
	}
	assert.Equal(t, 50, store.GetInt("picker.debounce_ms"))
}

func TestWatcher_InvalidFileKeepsValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("geonames.username", "demo"))

	w := NewWatcher(store)
	w.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("[[[ not toml"), 0600))

	select {
	case r := <-reloads:
		assert.Error(t, r.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after external write")
	}
	assert.Equal(t, "demo", store.GetString("geonames.username"))
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	reloads, err := NewWatcher(store).Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-reloads:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = NewWatcher(store).Watch(context.Background())
	assert.Error(t, err)
}
