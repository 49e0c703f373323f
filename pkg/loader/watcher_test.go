package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/eqtree/pkg/tree"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return Event{}
}

func TestWatcherReloadsOnSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	require.NoError(t, Save(path, sampleForest()))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	updated := []*tree.Node{tree.NewLeaf("only", "Only")}
	require.NoError(t, Save(path, updated))

	ev := waitEvent(t, w)
	require.NoError(t, ev.Err)
	require.Equal(t, []string{"only"}, flatIDs(ev.Roots))
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, Save(path, sampleForest()))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	require.NoError(t, Save(path, sampleForest()))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	ev := waitEvent(t, w)
	require.Error(t, ev.Err)
	require.Nil(t, ev.Roots)
}

func TestWatcherClosesEventsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, Save(path, sampleForest()))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case _, ok := <-w.Events():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
	require.NoError(t, w.Close())
}

func TestWatcherReportsEmptyChildInsteadOfCrashing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, Save(path, sampleForest()))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	src := "nodes:\n  - id: r\n    label: R\n    children:\n      - ~\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	ev := waitEvent(t, w)
	require.Error(t, ev.Err)
	require.Contains(t, ev.Err.Error(), "child 0 is empty")
	require.Nil(t, ev.Roots)
}
