package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/showcase/pkg/math"
)

// writeTestGLB saves a binary glTF with one red quad node translated to
// (1, 2, 3) and one unindexed triangle child without normals.
func writeTestGLB(t *testing.T, dir, name string) {
	t.Helper()

	metal, rough := 0.1, 0.9
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0", Generator: "showcase tests"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "root", Nodes: []int{0}}},
		Materials: []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
				MetallicFactor:  &metal,
				RoughnessFactor: &rough,
			},
		}},
	}

	quadPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	quadNorm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	quadIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	triPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}})

	doc.Meshes = []*gltf.Mesh{
		{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(quadIdx),
				Attributes: map[string]int{"POSITION": quadPos, "NORMAL": quadNorm},
				Material:   gltf.Index(0),
			}},
		},
		{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{"POSITION": triPos},
			}},
		},
	}
	doc.Nodes = []*gltf.Node{
		{
			Name:        "quad",
			Mesh:        gltf.Index(0),
			Children:    []int{1},
			Translation: [3]float64{1, 2, 3},
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		},
		{
			Name:     "tri",
			Mesh:     gltf.Index(1),
			Rotation: [4]float64{0, 0, 0, 1},
			Scale:    [3]float64{2, 2, 2},
		},
	}

	if err := gltf.SaveBinary(doc, filepath.Join(dir, name)); err != nil {
		t.Fatalf("saving test glb: %v", err)
	}
}

func newGLTFLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	writeTestGLB(t, filepath.Join(dir, "models"), "quad.glb")

	l := NewLoader(NewGLTFDecoder(), WithFS(os.DirFS(dir)))
	if !l.Initialize() {
		t.Fatal("glTF decoder should be available")
	}
	return l, dir
}

func TestGLTFDecodeStructure(t *testing.T) {
	l, _ := newGLTFLoader(t)

	root, err := l.Load(context.Background(), "models/quad.glb", LoadOptions{KeepMaterials: true})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}

	quad := root.Children[0]
	if quad.Name != "quad" || quad.Mesh == nil {
		t.Fatalf("unexpected first node %q", quad.Name)
	}
	if quad.Position != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("quad position = %v, want (1,2,3)", quad.Position)
	}
	if got := quad.Mesh.Geometry.TriangleCount(); got != 2 {
		t.Errorf("quad triangles = %d, want 2", got)
	}
	if got := quad.Mesh.Geometry.Normals[0]; got != (math.Vec3{Z: 1}) {
		t.Errorf("quad normal = %v, want (0,0,1)", got)
	}

	mat := quad.Mesh.Material
	if mat.Name != "red" || mat.Color != 0xff0000 {
		t.Errorf("quad material = %+v, want red ff0000", *mat)
	}
	if mat.Metalness < 0.099 || mat.Metalness > 0.101 || mat.Roughness < 0.899 || mat.Roughness > 0.901 {
		t.Errorf("quad metalness/roughness = %v/%v", mat.Metalness, mat.Roughness)
	}

	if len(quad.Children) != 1 {
		t.Fatalf("quad has %d children, want 1", len(quad.Children))
	}
	tri := quad.Children[0]
	if tri.Scale != math.Splat(2) {
		t.Errorf("tri scale = %v, want 2", tri.Scale)
	}
	if got := tri.Mesh.Geometry.TriangleCount(); got != 1 {
		t.Errorf("tri triangles = %d, want 1", got)
	}
	// computed from winding: (0,0,1)x(0,1,0) = (-1,0,0)
	if got := tri.Mesh.Geometry.Normals[0]; !got.ApproxEqual(math.Vec3{X: -1}, 1e-6) {
		t.Errorf("tri computed normal = %v, want (-1,0,0)", got)
	}
	if tri.Mesh.Material.Color != 0xffffff {
		t.Errorf("tri default material color = %06x, want ffffff", tri.Mesh.Material.Color)
	}
}

func TestGLTFLoadBounds(t *testing.T) {
	l, _ := newGLTFLoader(t)

	root, err := l.Load(context.Background(), "models/quad.glb", LoadOptions{Transform: Transform{Scale: Uniform(2)}})
	if err != nil {
		t.Fatal(err)
	}
	lo, hi, ok := root.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	// quad spans (1..2, 2..3, 3), tri adds (1, 2..4, 3..5); root doubles everything
	if !lo.ApproxEqual(math.Vec3{X: 2, Y: 4, Z: 6}, 1e-5) || !hi.ApproxEqual(math.Vec3{X: 4, Y: 8, Z: 10}, 1e-5) {
		t.Errorf("Bounds() = %v..%v", lo, hi)
	}
}

func TestGLTFLoadAppliesMaterial(t *testing.T) {
	l, _ := newGLTFLoader(t)

	root, err := l.Load(context.Background(), "models/quad.glb", LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	quad := root.Children[0]
	tri := quad.Children[0]
	if quad.Mesh.Material != tri.Mesh.Material {
		t.Error("every mesh should share the replacement material")
	}
	if quad.Mesh.Material.Color != DefaultColor {
		t.Errorf("color = %06x, want %06x", quad.Mesh.Material.Color, DefaultColor)
	}
}

func TestGLTFInvalidFile(t *testing.T) {
	l, dir := newGLTFLoader(t)
	if err := os.WriteFile(filepath.Join(dir, "models", "broken.glb"), []byte("not a model"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := l.Load(context.Background(), "models/broken.glb", LoadOptions{})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if loadErr.Path != "models/broken.glb" {
		t.Errorf("LoadError.Path = %q", loadErr.Path)
	}

	node := l.LoadWithFallback(context.Background(), "models/broken.glb", "skull", LoadOptions{})
	if node.Mesh == nil || node.Mesh.Geometry.Name != "icosahedron" {
		t.Error("broken file should fall back to the skull placeholder")
	}
}

func TestGLTFSupports(t *testing.T) {
	d := NewGLTFDecoder()
	for ext, want := range map[string]bool{".glb": true, ".gltf": true, ".obj": false, "": false} {
		if got := d.Supports(ext); got != want {
			t.Errorf("Supports(%q) = %v, want %v", ext, got, want)
		}
	}
}
