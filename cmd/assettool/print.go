package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/showcase/internal/catalog"
	"github.com/Faultbox/showcase/pkg/scene"
)

func printStats(w io.Writer, n *scene.Node) {
	var vertices, triangles int
	n.Traverse(func(c *scene.Node) {
		if c.Mesh != nil && c.Mesh.Geometry != nil {
			vertices += c.Mesh.Geometry.VertexCount()
			triangles += c.Mesh.Geometry.TriangleCount()
		}
	})

	fmt.Fprintf(w, "Meshes: %d\n", n.MeshCount())
	fmt.Fprintf(w, "Verts:  %d\n", vertices)
	fmt.Fprintf(w, "Tris:   %d\n", triangles)
	if lo, hi, ok := n.Bounds(); ok {
		fmt.Fprintf(w, "Bounds: (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
}

// printTree writes one line per node, children indented under parents.
func printTree(w io.Writer, n *scene.Node) {
	printNode(w, n, 0)
}

func printNode(w io.Writer, n *scene.Node, depth int) {
	name := n.Name
	if name == "" {
		name = "(unnamed)"
	}
	line := strings.Repeat("  ", depth) + name
	if m := n.Mesh; m != nil && m.Geometry != nil {
		line += fmt.Sprintf("  [%s: %d verts, %d tris", m.Geometry.Name, m.Geometry.VertexCount(), m.Geometry.TriangleCount())
		if m.Material != nil {
			line += fmt.Sprintf(", #%06x", m.Material.Color)
		}
		line += "]"
	}
	fmt.Fprintln(w, line)

	for _, c := range n.Children {
		printNode(w, c, depth+1)
	}
}

// printPreload writes one row per catalog element with what it resolved to.
func printPreload(w io.Writer, elems []catalog.Element, nodes []*scene.Node) {
	fmt.Fprintf(w, "%-7s %-20s %-10s %-44s %s\n", "PAGE", "OWNER", "NAME", "PATH", "RESULT")
	for i, e := range elems {
		result := "loaded"
		if strings.HasPrefix(nodes[i].Name, "fallback:") {
			result = nodes[i].Name
		}
		p := e.Request.Path
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%-7s %-20s %-10s %-44s %s\n", e.Page, e.Owner, e.Name, p, result)
	}
}
