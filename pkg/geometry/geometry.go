// Package geometry generates indexed triangle meshes for procedural shapes.
package geometry

import "github.com/Faultbox/showcase/pkg/math"

// Geometry holds indexed triangle data. Normals has one entry per position.
type Geometry struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty geometry reports ok=false.
func (g *Geometry) Bounds() (lo, hi math.Vec3, ok bool) {
	if len(g.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	lo, hi = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return lo, hi, true
}

// Clone returns a deep copy.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	return &Geometry{
		Name:      g.Name,
		Positions: append([]math.Vec3(nil), g.Positions...),
		Normals:   append([]math.Vec3(nil), g.Normals...),
		Indices:   append([]uint32(nil), g.Indices...),
	}
}

// builder accumulates vertices and triangles.
type builder struct {
	g *Geometry
}

func newBuilder(name string) *builder {
	return &builder{g: &Geometry{Name: name}}
}

func (b *builder) vertex(p, n math.Vec3) uint32 {
	b.g.Positions = append(b.g.Positions, p)
	b.g.Normals = append(b.g.Normals, n)
	return uint32(len(b.g.Positions) - 1)
}

func (b *builder) triangle(a, c, d uint32) {
	b.g.Indices = append(b.g.Indices, a, c, d)
}
