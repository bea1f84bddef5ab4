package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(store, []byte("{}"), 0o600))

	var calls atomic.Int32
	fired := make(chan struct{}, 10)
	w, err := NewWithDelay([]string{store}, 50*time.Millisecond, func() {
		calls.Add(1)
		fired <- struct{}{}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	for i := range 3 {
		require.NoError(t, os.WriteFile(store, []byte(`{"n":`+string(rune('0'+i))+`}`), 0o600))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked after store write")
	}
	time.Sleep(200 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "projects.json")

	fired := make(chan struct{}, 1)
	w, err := NewWithDelay([]string{store}, 20*time.Millisecond, func() {
		fired <- struct{}{}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "activity.jsonl"), []byte("{}\n"), 0o600))

	select {
	case <-fired:
		t.Fatal("callback invoked for an unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}
