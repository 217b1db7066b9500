package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/showcase/pkg/math"
)

// Box returns an axis-aligned box centered at the origin with one quad per face.
func Box(width, height, depth float32) *Geometry {
	b := newBuilder("box")
	hw, hh, hd := width/2, height/2, depth/2

	faces := []struct {
		normal, u, v math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -hd}, math.Vec3{Y: hh}},
		{math.Vec3{X: -1}, math.Vec3{Z: hd}, math.Vec3{Y: hh}},
		{math.Vec3{Y: 1}, math.Vec3{X: hw}, math.Vec3{Z: -hd}},
		{math.Vec3{Y: -1}, math.Vec3{X: hw}, math.Vec3{Z: hd}},
		{math.Vec3{Z: 1}, math.Vec3{X: hw}, math.Vec3{Y: hh}},
		{math.Vec3{Z: -1}, math.Vec3{X: -hw}, math.Vec3{Y: hh}},
	}
	half := math.Vec3{X: hw, Y: hh, Z: hd}

	for _, f := range faces {
		center := f.normal.Mul(half)
		i0 := b.vertex(center.Sub(f.u).Sub(f.v), f.normal)
		i1 := b.vertex(center.Add(f.u).Sub(f.v), f.normal)
		i2 := b.vertex(center.Add(f.u).Add(f.v), f.normal)
		i3 := b.vertex(center.Sub(f.u).Add(f.v), f.normal)
		b.triangle(i0, i1, i2)
		b.triangle(i0, i2, i3)
	}
	return b.g
}

// Sphere returns a UV sphere. widthSegments and heightSegments are clamped to
// at least 3 and 2.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	b := newBuilder("sphere")

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			n := math.Vec3{
				X: -math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				Y: math32.Cos(v * math32.Pi),
				Z: math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			row[ix] = b.vertex(n.Scale(radius), n.Normalize())
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			c := grid[iy][ix]
			d := grid[iy+1][ix]
			e := grid[iy+1][ix+1]
			// pole rows collapse to a single triangle per segment
			if iy != 0 {
				b.triangle(a, c, e)
			}
			if iy != heightSegments-1 {
				b.triangle(c, d, e)
			}
		}
	}
	return b.g
}

// Cylinder returns a capped cylinder along Y. A zero radius omits that cap.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	return cylinder("cylinder", radiusTop, radiusBottom, height, radialSegments)
}

// Cone returns a cone along Y with its apex at +height/2.
func Cone(radius, height float32, radialSegments int) *Geometry {
	return cylinder("cone", 0, radius, height, radialSegments)
}

func cylinder(name string, radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	b := newBuilder(name)
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	// torso: row 0 is the top ring, row 1 the bottom ring
	var rows [2][]uint32
	for y := 0; y < 2; y++ {
		radius := radiusTop
		py := halfHeight
		if y == 1 {
			radius = radiusBottom
			py = -halfHeight
		}
		rows[y] = make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
			sin, cos := math32.Sincos(theta)
			p := math.Vec3{X: radius * sin, Y: py, Z: radius * cos}
			n := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
			rows[y][x] = b.vertex(p, n)
		}
	}
	for x := 0; x < radialSegments; x++ {
		a := rows[0][x]
		c := rows[1][x]
		d := rows[1][x+1]
		e := rows[0][x+1]
		if radiusTop > 0 {
			b.triangle(a, c, e)
		}
		if radiusBottom > 0 {
			b.triangle(c, d, e)
		}
	}

	if radiusTop > 0 {
		addCap(b, radiusTop, halfHeight, 1, radialSegments)
	}
	if radiusBottom > 0 {
		addCap(b, radiusBottom, -halfHeight, -1, radialSegments)
	}
	return b.g
}

func addCap(b *builder, radius, y, sign float32, radialSegments int) {
	normal := math.Vec3{Y: sign}
	center := b.vertex(math.Vec3{Y: y}, normal)
	ring := make([]uint32, radialSegments+1)
	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		ring[x] = b.vertex(math.Vec3{X: radius * sin, Y: y, Z: radius * cos}, normal)
	}
	for x := 0; x < radialSegments; x++ {
		if sign > 0 {
			b.triangle(ring[x], ring[x+1], center)
		} else {
			b.triangle(ring[x+1], ring[x], center)
		}
	}
}

// Icosahedron returns a regular icosahedron with vertices on a sphere of the
// given radius.
func Icosahedron(radius float32) *Geometry {
	t := (1 + math32.Sqrt(5)) / 2
	corners := []math.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	b := newBuilder("icosahedron")
	for _, c := range corners {
		n := c.Normalize()
		b.vertex(n.Scale(radius), n)
	}
	for _, f := range faces {
		b.triangle(f[0], f[1], f[2])
	}
	return b.g
}

// TorusKnot returns a (p, q) torus knot tube.
func TorusKnot(radius, tube float32, tubularSegments, radialSegments, p, q int) *Geometry {
	tubularSegments = max(tubularSegments, 3)
	radialSegments = max(radialSegments, 3)
	b := newBuilder("torusknot")

	curve := func(u float32) math.Vec3 {
		cu, su := math32.Cos(u), math32.Sin(u)
		quOverP := float32(q) / float32(p) * u
		cs := math32.Cos(quOverP)
		return math.Vec3{
			X: radius * (2 + cs) * 0.5 * cu,
			Y: radius * (2 + cs) * su * 0.5,
			Z: radius * math32.Sin(quOverP) * 0.5,
		}
	}

	for i := 0; i <= tubularSegments; i++ {
		u := float32(i) / float32(tubularSegments) * float32(p) * 2 * math32.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		tangent := p2.Sub(p1)
		normal := p2.Add(p1)
		binormal := tangent.Cross(normal).Normalize()
		normal = binormal.Cross(tangent).Normalize()

		for j := 0; j <= radialSegments; j++ {
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			cx := -tube * math32.Cos(v)
			cy := tube * math32.Sin(v)
			pos := p1.Add(normal.Scale(cx)).Add(binormal.Scale(cy))
			b.vertex(pos, pos.Sub(p1).Normalize())
		}
	}

	stride := uint32(radialSegments + 1)
	for j := uint32(1); j <= uint32(tubularSegments); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := stride*(j-1) + (i - 1)
			c := stride*j + (i - 1)
			d := stride*j + i
			e := stride*(j-1) + i
			b.triangle(a, c, e)
			b.triangle(c, d, e)
		}
	}
	return b.g
}
