package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/showcase/pkg/geometry"
	"github.com/Faultbox/showcase/pkg/math"
	"github.com/Faultbox/showcase/pkg/scene"
)

// GLTFDecoder decodes glTF 2.0 assets in JSON (.gltf) or binary (.glb) form.
type GLTFDecoder struct{}

var _ Decoder = GLTFDecoder{}

// NewGLTFDecoder creates a glTF decoder.
func NewGLTFDecoder() GLTFDecoder {
	return GLTFDecoder{}
}

func (GLTFDecoder) Available() error {
	return nil
}

func (GLTFDecoder) Supports(ext string) bool {
	return ext == ".gltf" || ext == ".glb"
}

func (GLTFDecoder) Decode(ctx context.Context, r io.Reader, dir fs.FS) (*scene.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(r, dir).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding gltf: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &gltfBuilder{
		ctx:       ctx,
		doc:       doc,
		materials: make(map[int]*scene.Material),
		visiting:  make(map[int]bool),
	}
	return b.build()
}

// gltfBuilder converts one decoded document into a node tree.
type gltfBuilder struct {
	ctx       context.Context
	doc       *gltf.Document
	materials map[int]*scene.Material
	visiting  map[int]bool
}

func (b *gltfBuilder) build() (*scene.Node, error) {
	root := scene.NewNode("scene")

	roots, err := b.rootNodes()
	if err != nil {
		return nil, err
	}
	for _, idx := range roots {
		child, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

// rootNodes returns the nodes of the default scene. Documents without scenes
// use every node that is nobody's child.
func (b *gltfBuilder) rootNodes() ([]int, error) {
	doc := b.doc
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("default scene %d out of range", idx)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

func (b *gltfBuilder) node(idx int) (*scene.Node, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	gn := b.doc.Nodes[idx]
	n := scene.NewNode(gn.Name)
	n.Position, n.Rotation, n.Scale = nodeTRS(gn)

	if gn.Mesh != nil {
		if err := b.attachMesh(n, *gn.Mesh); err != nil {
			return nil, fmt.Errorf("node %d: %w", idx, err)
		}
	}
	for _, c := range gn.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// attachMesh puts a single triangle primitive directly on n; meshes with
// several primitives get one child node per primitive.
func (b *gltfBuilder) attachMesh(n *scene.Node, meshIdx int) error {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	gm := b.doc.Meshes[meshIdx]

	var meshes []*scene.Mesh
	for i, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		geom, err := b.geometry(gm.Name, prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		meshes = append(meshes, &scene.Mesh{Geometry: geom, Material: b.material(prim.Material)})
	}

	switch len(meshes) {
	case 0:
	case 1:
		n.Mesh = meshes[0]
	default:
		for i, m := range meshes {
			child := scene.NewNode(fmt.Sprintf("%s_%d", gm.Name, i))
			child.Mesh = m
			n.Add(child)
		}
	}
	return nil
}

func (b *gltfBuilder) geometry(name string, prim *gltf.Primitive) (*geometry.Geometry, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.New("missing POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	geom := &geometry.Geometry{Name: name, Positions: make([]math.Vec3, len(positions))}
	for i, p := range positions {
		geom.Positions[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		geom.Indices, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		geom.Indices = make([]uint32, len(positions))
		for i := range geom.Indices {
			geom.Indices[i] = uint32(i)
		}
	}
	for _, idx := range geom.Indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
		}
	}

	if normIdx, ok := prim.Attributes["NORMAL"]; ok {
		acr, err := b.accessor(normIdx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		if len(normals) == len(positions) {
			geom.Normals = make([]math.Vec3, len(normals))
			for i, nv := range normals {
				geom.Normals[i] = math.Vec3{X: nv[0], Y: nv[1], Z: nv[2]}
			}
		}
	}
	if geom.Normals == nil {
		geom.Normals = vertexNormals(geom)
	}
	return geom, nil
}

func (b *gltfBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// material converts a glTF material once per index so primitives sharing it
// share the result. Primitives without a material get the glTF default.
func (b *gltfBuilder) material(idx *int) *scene.Material {
	key := -1
	if idx != nil {
		key = *idx
	}
	if m, ok := b.materials[key]; ok {
		return m
	}

	m := &scene.Material{Color: 0xffffff, Metalness: 1, Roughness: 1}
	if key >= 0 && key < len(b.doc.Materials) {
		gm := b.doc.Materials[key]
		m.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if c := pbr.BaseColorFactor; c != nil {
				m.Color = scene.PackRGB(float32(c[0]), float32(c[1]), float32(c[2]))
			}
			if pbr.MetallicFactor != nil {
				m.Metalness = float32(*pbr.MetallicFactor)
			}
			if pbr.RoughnessFactor != nil {
				m.Roughness = float32(*pbr.RoughnessFactor)
			}
		}
	}
	b.materials[key] = m
	return m
}

// nodeTRS reads the local transform, preferring a non-identity matrix over
// the separate TRS fields.
func nodeTRS(gn *gltf.Node) (math.Vec3, math.Quat, math.Vec3) {
	if gn.Matrix != gltf.DefaultMatrix && gn.Matrix != [16]float64{} {
		var m math.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		return m.Decompose()
	}

	pos := math.Vec3{X: float32(gn.Translation[0]), Y: float32(gn.Translation[1]), Z: float32(gn.Translation[2])}

	rot := math.QuatIdentity()
	if gn.Rotation != [4]float64{} {
		rot = math.Quat{
			X: float32(gn.Rotation[0]),
			Y: float32(gn.Rotation[1]),
			Z: float32(gn.Rotation[2]),
			W: float32(gn.Rotation[3]),
		}.Normalize()
	}

	scale := math.Splat(1)
	if gn.Scale != [3]float64{} {
		scale = math.Vec3{X: float32(gn.Scale[0]), Y: float32(gn.Scale[1]), Z: float32(gn.Scale[2])}
	}
	return pos, rot, scale
}

// vertexNormals averages face normals onto the vertices they touch.
func vertexNormals(g *geometry.Geometry) []math.Vec3 {
	normals := make([]math.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		face := g.Positions[b].Sub(g.Positions[a]).Cross(g.Positions[c].Sub(g.Positions[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
