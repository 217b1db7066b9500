package assets

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherInvalidatesChangedAsset(t *testing.T) {
	l, dir := newGLTFLoader(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := l.Load(ctx, "models/quad.glb", LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if !l.Cached("models/quad.glb") {
		t.Fatal("expected quad.glb to be cached")
	}

	w, err := NewWatcher(l, dir, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	invalidated := make(chan string, 8)
	w.Invalidated = invalidated

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeTestGLB(t, filepath.Join(dir, "models"), "quad.glb")

	select {
	case got := <-invalidated:
		if got != "models/quad.glb" {
			t.Errorf("invalidated %q, want models/quad.glb", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for invalidation")
	}
	if l.Cached("models/quad.glb") {
		t.Error("changed asset should no longer be cached")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}

func TestNewWatcherMissingRoot(t *testing.T) {
	l := NewLoader(nil)
	w, err := NewWatcher(l, filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("NewWatcher() on missing root error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("Run() error: %v", err)
	}
}
