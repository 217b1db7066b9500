package geometry

import (
	"testing"

	"github.com/Faultbox/showcase/pkg/math"
)

func TestShapeCounts(t *testing.T) {
	tests := []struct {
		name      string
		geom      *Geometry
		vertices  int
		triangles int
	}{
		{"box", Box(1.5, 1.5, 1.5), 24, 12},
		{"icosahedron", Icosahedron(1), 12, 20},
		{"sphere 8x6", Sphere(1, 8, 6), 9 * 7, 8 * (2*6 - 2)},
		{"sphere 16x12", Sphere(1, 16, 12), 17 * 13, 16 * (2*12 - 2)},
		// torso rings + two caps of (center + ring)
		{"cylinder", Cylinder(0.5, 0.5, 2, 16), 17*2 + 2*(1+17), 16*2 + 16*2},
		// apex ring has no cap and no upper torso triangles
		{"cone", Cone(1, 2, 8), 9*2 + (1 + 9), 8 + 8},
		{"torus knot", TorusKnot(0.7, 0.25, 64, 8, 2, 3), 65 * 9, 2 * 64 * 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.geom.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := tt.geom.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if len(tt.geom.Normals) != len(tt.geom.Positions) {
				t.Errorf("normals %d != positions %d", len(tt.geom.Normals), len(tt.geom.Positions))
			}
			for i, idx := range tt.geom.Indices {
				if int(idx) >= tt.geom.VertexCount() {
					t.Fatalf("index %d at %d out of range", idx, i)
				}
			}
		})
	}
}

func TestBoxBounds(t *testing.T) {
	lo, hi, ok := Box(2, 4, 6).Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if lo != (math.Vec3{X: -1, Y: -2, Z: -3}) || hi != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Bounds() = %v..%v", lo, hi)
	}
}

func TestSphereRadius(t *testing.T) {
	g := Sphere(2, 8, 6)
	for i, p := range g.Positions {
		if l := p.Length(); l < 1.999 || l > 2.001 {
			t.Fatalf("vertex %d at distance %v, want 2", i, l)
		}
	}
}

func TestEmptyBounds(t *testing.T) {
	if _, _, ok := (&Geometry{}).Bounds(); ok {
		t.Error("empty geometry should report no bounds")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := Box(1, 1, 1)
	c := g.Clone()
	c.Positions[0] = math.Vec3{X: 99}
	c.Indices[0] = 7

	if g.Positions[0] == c.Positions[0] {
		t.Error("clone shares positions with original")
	}
	if g.Indices[0] == 7 {
		t.Error("clone shares indices with original")
	}
}

func TestForKind(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{KindSkull, "icosahedron"},
		{KindCube, "box"},
		{KindTorus, "torusknot"},
		{KindSphere, "sphere"},
		{KindCylinder, "cylinder"},
		{KindCone, "cone"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := ForKind(tt.kind).Name; got != tt.name {
				t.Errorf("ForKind(%q).Name = %q, want %q", tt.kind, got, tt.name)
			}
		})
	}
}

func TestUnknownKindUsesDefaultSphere(t *testing.T) {
	unknown := ForKind("nonexistent-kind")
	empty := ForKind("")
	def := Sphere(1, 8, 6)

	for _, g := range []*Geometry{unknown, empty} {
		if g.Name != def.Name || g.VertexCount() != def.VertexCount() || g.TriangleCount() != def.TriangleCount() {
			t.Errorf("got %s with %d/%d, want default sphere %d/%d",
				g.Name, g.VertexCount(), g.TriangleCount(), def.VertexCount(), def.TriangleCount())
		}
	}
	if Kind("nonexistent-kind").Resolve() != KindDefault {
		t.Error("unknown kind should resolve to KindDefault")
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 6 {
		t.Fatalf("Kinds() returned %d kinds, want 6", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("Kinds() not sorted: %v", kinds)
		}
	}
	for _, k := range kinds {
		if k == KindDefault {
			t.Error("Kinds() should not list KindDefault")
		}
	}
}
