// Package scene provides the CPU-side node tree handed to renderers.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/showcase/pkg/geometry"
	"github.com/Faultbox/showcase/pkg/math"
)

// Mesh pairs geometry with a material.
type Mesh struct {
	Geometry *geometry.Geometry
	Material *Material
}

// Node is one element of a scene tree. Each node carries a local TRS
// transform relative to its parent.
type Node struct {
	ID       uuid.UUID
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Mesh     *Mesh
	Children []*Node
}

// NewNode creates an empty node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Splat(1),
	}
}

// NewMeshNode creates a node holding a single mesh.
func NewMeshNode(name string, geom *geometry.Geometry, mat *Material) *Node {
	n := NewNode(name)
	n.Mesh = &Mesh{Geometry: geom, Material: mat}
	return n
}

// Add appends children to n.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Traverse calls fn for n and every descendant, depth first, parents before
// children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// MeshCount returns the number of nodes in the subtree holding a mesh.
func (n *Node) MeshCount() int {
	count := 0
	n.Traverse(func(node *Node) {
		if node.Mesh != nil {
			count++
		}
	})
	return count
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// Bounds returns the axis-aligned bounding box of every mesh in the subtree,
// in the coordinate space of n's parent. ok is false when the subtree has no
// vertices.
func (n *Node) Bounds() (lo, hi math.Vec3, ok bool) {
	n.bounds(math.Identity(), &lo, &hi, &ok)
	return lo, hi, ok
}

func (n *Node) bounds(parent math.Mat4, lo, hi *math.Vec3, ok *bool) {
	world := parent.Mul(n.LocalMatrix())
	if n.Mesh != nil && n.Mesh.Geometry != nil {
		for _, p := range n.Mesh.Geometry.Positions {
			wp := world.TransformPoint(p)
			if !*ok {
				*lo, *hi, *ok = wp, wp, true
				continue
			}
			*lo = lo.Min(wp)
			*hi = hi.Max(wp)
		}
	}
	for _, c := range n.Children {
		c.bounds(world, lo, hi, ok)
	}
}

// Clone returns a deep copy of the subtree. Geometry and materials are copied;
// a material shared by several meshes in n stays shared among the copies.
// Every copied node gets a new ID.
func (n *Node) Clone() *Node {
	materials := make(map[*Material]*Material)
	return n.clone(materials)
}

func (n *Node) clone(materials map[*Material]*Material) *Node {
	c := &Node{
		ID:       uuid.New(),
		Name:     n.Name,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
	}
	if n.Mesh != nil {
		mat, seen := materials[n.Mesh.Material]
		if !seen {
			mat = n.Mesh.Material.Clone()
			materials[n.Mesh.Material] = mat
		}
		c.Mesh = &Mesh{Geometry: n.Mesh.Geometry.Clone(), Material: mat}
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone(materials)
		}
	}
	return c
}
