package assets

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/showcase/pkg/scene"
)

// EncodeGLB writes the subtree rooted at n as a binary glTF file with a
// single scene. Materials shared between meshes are written once.
func EncodeGLB(w io.Writer, n *scene.Node) error {
	e := &gltfExporter{
		doc: &gltf.Document{
			Asset: gltf.Asset{Version: "2.0", Generator: "showcase assettool"},
			Scene: gltf.Index(0),
		},
		materials: make(map[*scene.Material]int),
	}
	root := e.node(n)
	e.doc.Scenes = []*gltf.Scene{{Name: n.Name, Nodes: []int{root}}}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(e.doc)
}

type gltfExporter struct {
	doc       *gltf.Document
	materials map[*scene.Material]int
}

// node appends n and its subtree and returns the index of n.
func (e *gltfExporter) node(n *scene.Node) int {
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{float64(n.Position.X), float64(n.Position.Y), float64(n.Position.Z)},
		Rotation:    [4]float64{float64(n.Rotation.X), float64(n.Rotation.Y), float64(n.Rotation.Z), float64(n.Rotation.W)},
		Scale:       [3]float64{float64(n.Scale.X), float64(n.Scale.Y), float64(n.Scale.Z)},
	}
	idx := len(e.doc.Nodes)
	e.doc.Nodes = append(e.doc.Nodes, gn)

	if n.Mesh != nil && n.Mesh.Geometry != nil {
		gn.Mesh = gltf.Index(e.mesh(n.Mesh))
	}
	for _, c := range n.Children {
		gn.Children = append(gn.Children, e.node(c))
	}
	return idx
}

func (e *gltfExporter) mesh(m *scene.Mesh) int {
	g := m.Geometry
	positions := make([][3]float32, len(g.Positions))
	for i, p := range g.Positions {
		positions[i] = [3]float32{p.X, p.Y, p.Z}
	}

	prim := &gltf.Primitive{
		Mode:       gltf.PrimitiveTriangles,
		Attributes: map[string]int{"POSITION": modeler.WritePosition(e.doc, positions)},
	}
	if len(g.Normals) == len(g.Positions) {
		normals := make([][3]float32, len(g.Normals))
		for i, nv := range g.Normals {
			normals[i] = [3]float32{nv.X, nv.Y, nv.Z}
		}
		prim.Attributes["NORMAL"] = modeler.WriteNormal(e.doc, normals)
	}
	if len(g.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(e.doc, g.Indices))
	}
	if m.Material != nil {
		prim.Material = gltf.Index(e.material(m.Material))
	}

	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{Name: g.Name, Primitives: []*gltf.Primitive{prim}})
	return len(e.doc.Meshes) - 1
}

func (e *gltfExporter) material(m *scene.Material) int {
	if idx, ok := e.materials[m]; ok {
		return idx
	}
	r, g, b := m.RGB()
	metal, rough := float64(m.Metalness), float64(m.Roughness)
	e.doc.Materials = append(e.doc.Materials, &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(r), float64(g), float64(b), 1},
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
	})
	idx := len(e.doc.Materials) - 1
	e.materials[m] = idx
	return idx
}
