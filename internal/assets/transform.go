package assets

import (
	"github.com/Faultbox/showcase/pkg/math"
	"github.com/Faultbox/showcase/pkg/scene"
)

// Scale is either a uniform factor or a per-axis triple. The zero value
// means a scale of 1 on every axis.
type Scale struct {
	xyz math.Vec3
	set bool
}

// Uniform returns a scale of s on all three axes.
func Uniform(s float32) Scale {
	return Scale{xyz: math.Splat(s), set: true}
}

// PerAxis returns an independent scale per axis. A zero component is
// treated as 1.
func PerAxis(x, y, z float32) Scale {
	one := func(v float32) float32 {
		if v == 0 {
			return 1
		}
		return v
	}
	return Scale{xyz: math.Vec3{X: one(x), Y: one(y), Z: one(z)}, set: true}
}

// Vec3 returns the per-axis factors.
func (s Scale) Vec3() math.Vec3 {
	if !s.set {
		return math.Splat(1)
	}
	return s.xyz
}

// Transform is applied to the root of every node the loader returns.
// Rotation holds Euler angles in radians, applied in X, Y, Z order.
type Transform struct {
	Scale    Scale
	Position math.Vec3
	Rotation math.Vec3
}

// ApplyTransform sets the root scale, position and rotation of n in one step
// and returns n.
func ApplyTransform(n *scene.Node, t Transform) *scene.Node {
	n.Scale = t.Scale.Vec3()
	n.Position = t.Position
	n.Rotation = math.QuatFromEuler(t.Rotation)
	return n
}
