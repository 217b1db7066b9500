package assets

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/showcase/pkg/geometry"
	"github.com/Faultbox/showcase/pkg/math"
	"github.com/Faultbox/showcase/pkg/scene"
)

func TestEncodeGLBRoundTrip(t *testing.T) {
	l := NewLoader(nil)
	root := l.CreateFallback(geometry.KindTorus, 0xff0040)
	root.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	child := scene.NewMeshNode("cube", geometry.Box(1, 1, 1), root.Mesh.Material)
	root.Add(child)

	var buf bytes.Buffer
	if err := EncodeGLB(&buf, root); err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}

	decoded, err := NewGLTFDecoder().Decode(context.Background(), &buf, fstest.MapFS{})
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(decoded.Children) != 1 {
		t.Fatalf("expected 1 scene root, got %d", len(decoded.Children))
	}

	got := decoded.Children[0]
	if got.Name != "fallback:torus" || got.Position != root.Position {
		t.Errorf("root = %s at %v, want fallback:torus at %v", got.Name, got.Position, root.Position)
	}
	if got.Mesh == nil || got.Mesh.Geometry.VertexCount() != root.Mesh.Geometry.VertexCount() {
		t.Fatalf("vertex count mismatch after round trip")
	}
	if got.Mesh.Geometry.TriangleCount() != root.Mesh.Geometry.TriangleCount() {
		t.Errorf("triangle count = %d, want %d", got.Mesh.Geometry.TriangleCount(), root.Mesh.Geometry.TriangleCount())
	}
	if got.Mesh.Material.Color != 0xff0040 {
		t.Errorf("color = %#x, want 0xff0040", got.Mesh.Material.Color)
	}
	if len(got.Children) != 1 || got.Children[0].Mesh.Material != got.Mesh.Material {
		t.Error("expected the shared material to stay shared")
	}
}
