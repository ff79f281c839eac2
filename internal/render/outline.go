package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/catchr/internal/artifact"
)

// Node is one line of an artifact outline.
type Node struct {
	Depth      int
	Name       string
	Leaf       bool
	Marker     string // leaf annotation, empty for namespaces
	Statements int    // statements in a leaf body, scope included
	Line       int
}

// Outline lists the artifacts of trees depth first, namespaces before their
// children.
func Outline(trees []artifact.Artifact) []Node {
	var out []Node
	for _, t := range trees {
		outline(t, 0, &out)
	}
	return out
}

func outline(a artifact.Artifact, depth int, out *[]Node) {
	switch a := a.(type) {
	case *artifact.Procedure:
		n := Node{
			Depth:      depth,
			Name:       a.Name,
			Leaf:       true,
			Statements: len(a.Body.Statements()),
			Line:       a.Line,
		}
		if a.Annotation != nil {
			n.Marker = a.Annotation.Marker()
		}
		*out = append(*out, n)
	case *artifact.Namespace:
		*out = append(*out, Node{Depth: depth, Name: a.Name, Line: a.Line})
		for _, child := range a.Children {
			outline(child, depth+1, out)
		}
	}
}

// String formats n without styling, indented two spaces per level.
func (n Node) String() string {
	indent := strings.Repeat("  ", n.Depth)
	if !n.Leaf {
		return indent + n.Name + "/"
	}
	return fmt.Sprintf("%s%s [%s] (%d)", indent, n.Name, n.Marker, n.Statements)
}

// WriteOutline writes the plain outline of trees to w.
func WriteOutline(w io.Writer, trees []artifact.Artifact) error {
	for _, n := range Outline(trees) {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
