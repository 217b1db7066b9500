package scene

// Material describes surface shading for a mesh.
type Material struct {
	Name        string
	Color       uint32 // 0xRRGGBB
	Metalness   float32
	Roughness   float32
	FlatShading bool
	Wireframe   bool
}

// Clone returns a copy of the material.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// RGB returns the color as normalized red, green and blue components.
func (m *Material) RGB() (r, g, b float32) {
	return float32(m.Color>>16&0xff) / 255, float32(m.Color>>8&0xff) / 255, float32(m.Color&0xff) / 255
}

// PackRGB packs normalized color components into 0xRRGGBB, clamping to [0, 1].
func PackRGB(r, g, b float32) uint32 {
	channel := func(v float32) uint32 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 0xff
		}
		return uint32(v*255 + 0.5)
	}
	return channel(r)<<16 | channel(g)<<8 | channel(b)
}
