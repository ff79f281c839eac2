// Package artifact models generated code: procedures (runnable test
// functions) grouped into namespaces, with bodies made of opaque statements
// and nested bare blocks.
package artifact

// Code is a *Stmt or a Block.
type Code interface {
	code()
}

// Stmt is one opaque statement.
type Stmt struct {
	Text string
}

// Block is a braced sequence of code. Nested blocks open a new lexical
// scope in the generated source.
type Block []Code

func (*Stmt) code() {}
func (Block) code() {}

// Statements returns the statement texts of b in execution order.
func (b Block) Statements() []string {
	var out []string
	for _, c := range b {
		switch c := c.(type) {
		case *Stmt:
			out = append(out, c.Text)
		case Block:
			out = append(out, c.Statements()...)
		}
	}
	return out
}

// Artifact is a *Procedure or a *Namespace.
type Artifact interface {
	artifact()
	Ident() string
}

// Procedure is one independently runnable test.
type Procedure struct {
	Name       string
	Annotation Annotation
	Body       Block
	Line       int
}

// Namespace groups the artifacts generated for the children of one
// internal block.
type Namespace struct {
	Name     string
	Children []Artifact
	Line     int
}

func (*Procedure) artifact() {}
func (*Namespace) artifact() {}

func (p *Procedure) Ident() string { return p.Name }
func (n *Namespace) Ident() string { return n.Name }

// Path is a procedure together with the names of the namespaces that
// enclose it, outermost first.
type Path struct {
	Namespaces []string
	Procedure  *Procedure
}

// Segments returns the enclosing namespace names followed by the procedure
// name.
func (p Path) Segments() []string {
	out := make([]string, 0, len(p.Namespaces)+1)
	out = append(out, p.Namespaces...)
	return append(out, p.Procedure.Name)
}

// Procedures lists every procedure reachable from a, depth first in
// declaration order.
func Procedures(a Artifact) []Path {
	var out []Path
	walk(a, nil, &out)
	return out
}

func walk(a Artifact, prefix []string, out *[]Path) {
	switch a := a.(type) {
	case *Procedure:
		ns := make([]string, len(prefix))
		copy(ns, prefix)
		*out = append(*out, Path{Namespaces: ns, Procedure: a})
	case *Namespace:
		prefix = append(prefix, a.Name)
		for _, child := range a.Children {
			walk(child, prefix, out)
		}
	}
}
