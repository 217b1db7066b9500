package geometry

import "sort"

// Kind names a placeholder shape used when a real asset cannot be loaded.
type Kind string

const (
	KindSkull    Kind = "skull"
	KindCube     Kind = "cube"
	KindTorus    Kind = "torus"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"

	// KindDefault is the shape used for empty or unknown kinds.
	KindDefault Kind = "default"
)

// shapes maps every kind to its generator. Adding a kind means adding a
// constant and an entry here.
var shapes = map[Kind]func() *Geometry{
	KindSkull:    func() *Geometry { return Icosahedron(1) },
	KindCube:     func() *Geometry { return Box(1.5, 1.5, 1.5) },
	KindTorus:    func() *Geometry { return TorusKnot(0.7, 0.25, 64, 8, 2, 3) },
	KindSphere:   func() *Geometry { return Sphere(1, 16, 12) },
	KindCylinder: func() *Geometry { return Cylinder(0.5, 0.5, 2, 16) },
	KindCone:     func() *Geometry { return Cone(1, 2, 8) },
	KindDefault:  func() *Geometry { return Sphere(1, 8, 6) },
}

// Known reports whether k has its own shape. KindDefault counts as known.
func (k Kind) Known() bool {
	_, ok := shapes[k]
	return ok
}

// Resolve returns k if it is known and KindDefault otherwise.
func (k Kind) Resolve() Kind {
	if k.Known() {
		return k
	}
	return KindDefault
}

// ForKind generates a fresh geometry for k. Unknown kinds get the default
// low-resolution sphere.
func ForKind(k Kind) *Geometry {
	return shapes[k.Resolve()]()
}

// Kinds returns every kind with a dedicated shape, sorted, excluding KindDefault.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(shapes)-1)
	for k := range shapes {
		if k != KindDefault {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
