// Package generator flattens a scenario block tree into artifacts: one
// procedure per leaf block and one namespace per internal block. Every
// procedure body carries the statements of its ancestors, framed by scope.
package generator

import (
	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/escape"
	"github.com/chriserin/catchr/internal/parser"
	"github.com/chriserin/catchr/internal/scope"
)

// Generator turns blocks into artifacts. It has no failure path: any tree
// produced by the parser is generated.
type Generator struct {
	annotation artifact.Annotation
}

// Option configures a Generator.
type Option func(*Generator)

// WithAnnotation sets the leaf annotation applied to every procedure.
func WithAnnotation(a artifact.Annotation) Option {
	return func(g *Generator) { g.annotation = a }
}

// New returns a Generator using [artifact.Sync] unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{annotation: artifact.Sync{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Annotation returns the leaf annotation in use.
func (g *Generator) Annotation() artifact.Annotation { return g.annotation }

// Generate produces the artifact for blk within sc. Call it with
// [scope.Empty] for a root block.
func (g *Generator) Generate(blk *parser.Block, sc scope.Scope) artifact.Artifact {
	name := Identifier(blk)

	if blk.Body.IsLeaf() {
		return &artifact.Procedure{
			Name:       name,
			Annotation: g.annotation,
			Body:       g.annotation.Wrap(sc.Apply(blk.Body.Statements())),
			Line:       blk.Pos.Line,
		}
	}

	return &artifact.Namespace{
		Name:     name,
		Children: g.children(blk.Body, sc),
		Line:     blk.Pos.Line,
	}
}

// GenerateBody generates every block nested directly in body, framing each
// with the statements around it.
func (g *Generator) GenerateBody(body parser.Body) []artifact.Artifact {
	return g.children(body, scope.Empty())
}

func (g *Generator) children(body parser.Body, sc scope.Scope) []artifact.Artifact {
	var out []artifact.Artifact
	for i, it := range body.Items {
		child, ok := it.(*parser.Block)
		if !ok {
			continue
		}
		out = append(out, g.Generate(child, sc.Extend(body.Before(i), body.After(i))))
	}
	return out
}

// Identifier is the generated name of blk: the kind prefix and the escaped
// display name joined by an underscore, or the escaped name alone for a
// kind with no prefix.
func Identifier(blk *parser.Block) string {
	name := escape.Name(blk.Name)
	if p := blk.Kind.Prefix(); p != "" {
		return p + "_" + name
	}
	return name
}
