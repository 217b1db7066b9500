package catalog

import (
	"fmt"
	"strings"

	"github.com/Faultbox/showcase/internal/assets"
	"github.com/Faultbox/showcase/internal/config"
	"github.com/Faultbox/showcase/pkg/geometry"
	"github.com/Faultbox/showcase/pkg/math"
)

// Placement defaults used by the site pages.
const (
	CardScale     = 1.2 // logo on a game card
	ViewerSpacing = 3   // distance between models on a detail page
)

// Element is one renderable thing on a page together with its request.
type Element struct {
	Page    string // "card", "viewer" or "team"
	Owner   string // game slug or member name
	Name    string
	Request assets.Request
}

// Elements lists every model the site shows: game card logos, detail page
// models laid out in a row centered on the origin, and team avatars, which
// have no file and always use their placeholder.
func (c *Catalog) Elements() []Element {
	var out []Element
	for _, g := range c.Games {
		if g.LogoModel != nil {
			req := g.LogoModel.request(assets.Uniform(CardScale), math.Vec3{})
			out = append(out, Element{Page: "card", Owner: g.Slug, Name: "logo", Request: req})
		}

		offset := float32(len(g.Models)-1) * ViewerSpacing / 2
		for i, m := range g.Models {
			pos := math.Vec3{X: float32(i)*ViewerSpacing - offset}
			req := m.request(assets.Uniform(1), pos)
			out = append(out, Element{Page: "viewer", Owner: g.Slug, Name: m.Name, Request: req})
		}
	}
	for _, m := range c.Team {
		out = append(out, Element{
			Page:    "team",
			Owner:   m.Name,
			Name:    "avatar",
			Request: assets.Request{Fallback: m.AvatarType},
		})
	}
	return out
}

// Requests returns the requests of Elements in the same order.
func (c *Catalog) Requests() []assets.Request {
	elems := c.Elements()
	reqs := make([]assets.Request, len(elems))
	for i, e := range elems {
		reqs[i] = e.Request
	}
	return reqs
}

// request builds a load request. Values set on the model override the
// page defaults. Validate has already rejected bad scale and color values.
func (m *Model) request(scale assets.Scale, pos math.Vec3) assets.Request {
	if s, err := parseScale(m.Scale); err == nil && s != nil {
		scale = *s
	}
	if m.Position != nil {
		pos = m.Position.vec3()
	}
	var rot math.Vec3
	if m.Rotation != nil {
		rot = m.Rotation.vec3()
	}
	color, _ := parseColor(m.Color)

	return assets.Request{
		Path:     m.Path,
		Fallback: m.FallbackType,
		Options: assets.LoadOptions{
			Transform: assets.Transform{Scale: scale, Position: pos, Rotation: rot},
			Color:     color,
		},
	}
}

func (p *Point) vec3() math.Vec3 {
	return math.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// parseScale accepts nil, a number or an {x, y, z} map as decoded by either
// the YAML or the TOML decoder. Missing axes default to 1.
func parseScale(v any) (*assets.Scale, error) {
	if v == nil {
		return nil, nil
	}
	if f, ok := number(v); ok {
		s := assets.Uniform(f)
		return &s, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected number or {x, y, z}, got %T", v)
	}

	axes := [3]float32{1, 1, 1}
	for key, raw := range m {
		f, ok := number(raw)
		if !ok {
			return nil, fmt.Errorf("axis %q: expected number, got %T", key, raw)
		}
		switch strings.ToLower(key) {
		case "x":
			axes[0] = f
		case "y":
			axes[1] = f
		case "z":
			axes[2] = f
		default:
			return nil, fmt.Errorf("unknown axis %q", key)
		}
	}
	s := assets.PerAxis(axes[0], axes[1], axes[2])
	return &s, nil
}

// parseColor accepts nil, an integer or a color string. Nil yields 0, which
// the loader reads as its default color.
func parseColor(v any) (uint32, error) {
	switch c := v.(type) {
	case nil:
		return 0, nil
	case string:
		parsed, err := config.ParseColor(c)
		return uint32(parsed), err
	}
	f, ok := number(v)
	if !ok || f < 0 || f > 0xffffff || f != float32(int64(f)) {
		return 0, fmt.Errorf("expected 0xRRGGBB value, got %v", v)
	}
	return uint32(f), nil
}

func number(v any) (float32, bool) {
	switch n := v.(type) {
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	case float64:
		return float32(n), true
	}
	return 0, false
}

// Kinds lists the fallback kinds the catalog refers to, resolved.
func (c *Catalog) Kinds() []geometry.Kind {
	seen := make(map[geometry.Kind]bool)
	var kinds []geometry.Kind
	for _, e := range c.Elements() {
		k := e.Request.Fallback.Resolve()
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}
