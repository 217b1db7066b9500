package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromEulerSingleAxis(t *testing.T) {
	tests := []struct {
		name  string
		euler Vec3
		axis  Vec3
	}{
		{"x", Vec3{X: 0.7}, Vec3{X: 1}},
		{"y", Vec3{Y: 0.7}, Vec3{Y: 1}},
		{"z", Vec3{Z: 0.7}, Vec3{Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromEuler(tt.euler)
			want := QuatFromAxisAngle(tt.axis, 0.7)
			if !got.ApproxEqual(want, 1e-5) {
				t.Errorf("QuatFromEuler(%v) = %v, want %v", tt.euler, got, want)
			}
		})
	}
}

func TestQuatFromEulerOrder(t *testing.T) {
	e := Vec3{X: 0.3, Y: -1.1, Z: 2.0}
	got := QuatFromEuler(e)

	qx := QuatFromAxisAngle(Vec3{X: 1}, e.X)
	qy := QuatFromAxisAngle(Vec3{Y: 1}, e.Y)
	qz := QuatFromAxisAngle(Vec3{Z: 1}, e.Z)
	want := qx.Mul(qy).Mul(qz)

	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("QuatFromEuler XYZ = %v, want %v", got, want)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromEuler(Vec3{X: 0.4, Y: 1.2, Z: -0.5})
	v := Vec3{1, 2, 3}

	byQuat := q.Rotate(v)
	byMat := q.ToMat4().TransformPoint(v)
	if !byQuat.ApproxEqual(byMat, 1e-4) {
		t.Errorf("Rotate = %v, ToMat4 = %v", byQuat, byMat)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got := a.Min(b); got != (Vec3{1, -1, -2}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, 0}) {
		t.Errorf("Max = %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}
