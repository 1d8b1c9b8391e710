package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsHDLChanges(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig(dir)
	cfg.Debounce = 10 * time.Millisecond

	w, err := New(cfg)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	src := filepath.Join(dir, "e320_clocking.v")
	require.NoError(t, os.WriteFile(src, []byte("module e320_clocking; endmodule"), 0644))

	select {
	case got := <-w.Changes():
		require.Equal(t, src, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig(dir)
	cfg.Debounce = 10 * time.Millisecond

	w, err := New(cfg)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change event for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStartIsIdempotent(t *testing.T) {
	w, err := New(DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	defer w.Stop()

	ctx := context.Background()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
