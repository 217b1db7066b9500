package assets

import (
	"testing"

	"github.com/Faultbox/showcase/pkg/scene"
)

func TestCacheStats(t *testing.T) {
	c := NewCache()
	c.Set("a.glb", scene.NewNode("a"))

	if _, ok := c.Get("a.glb"); !ok {
		t.Error("expected hit for a.glb")
	}
	if _, ok := c.Get("b.glb"); ok {
		t.Error("expected miss for b.glb")
	}
	c.Has("a.glb")

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d, %d, want 1, 1", hits, misses)
	}

	c.Clear()
	hits, misses = c.Stats()
	if hits != 0 || misses != 0 || len(c.Keys()) != 0 {
		t.Error("Clear() should reset entries and stats")
	}
}

func TestCacheLastWriterWins(t *testing.T) {
	c := NewCache()
	first := scene.NewNode("first")
	second := scene.NewNode("second")
	c.Set("a.glb", first)
	c.Set("a.glb", second)

	got, _ := c.Get("a.glb")
	if got != second {
		t.Errorf("Get() = %s, want second", got.Name)
	}
	if !c.Delete("a.glb") || c.Delete("a.glb") {
		t.Error("Delete() should report presence exactly once")
	}
}
