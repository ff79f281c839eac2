// Package compiler runs a scenario file through the whole pipeline: parse,
// generate and render.
package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/escape"
	"github.com/chriserin/catchr/internal/generator"
	"github.com/chriserin/catchr/internal/keyword"
	"github.com/chriserin/catchr/internal/parser"
	"github.com/chriserin/catchr/internal/render"
	"github.com/chriserin/catchr/internal/scope"
)

// Ext is the scenario source file extension.
const Ext = ".catchr"

// Options controls a compilation. The zero value uses the flat layout, the
// sync annotation and the default keywords.
type Options struct {
	Layout     render.Layout
	Annotation artifact.Annotation
	Registry   *keyword.Registry
}

// Procedure is one generated test function.
type Procedure struct {
	Name   string // name reported by go test, see render.TestName
	Path   string // namespace path joined with "/"
	Marker string
	Line   int
	Source string // the procedure rendered as a standalone function
}

// Result is a compiled scenario file.
type Result struct {
	Package    string
	Namespace  string
	Trees      []artifact.Artifact
	Procedures []Procedure
	Output     []byte
}

// Namespace is the wrapping namespace for the blocks of the named file.
func Namespace(filename string) string {
	base := filepath.Base(filename)
	return escape.Name(strings.TrimSuffix(base, filepath.Ext(base)))
}

// OutputPath is the generated test file written next to a source file.
func OutputPath(filename, suffix string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + suffix
}

// Build parses src and generates its artifact trees without rendering.
// Every top-level block is wrapped in a namespace named after the file.
func Build(filename string, src []byte, opts Options) (*parser.File, []artifact.Artifact, error) {
	popts := []parser.Option{parser.WithFilename(filename)}
	if opts.Registry != nil {
		popts = append(popts, parser.WithRegistry(*opts.Registry))
	}

	f, err := parser.ParseFile(src, popts...)
	if err != nil {
		return nil, nil, err
	}

	ann := opts.Annotation
	if ann == nil {
		ann = artifact.Sync{}
	}
	gen := generator.New(generator.WithAnnotation(ann))
	ns := Namespace(filename)

	var trees []artifact.Artifact
	for _, blk := range f.Blocks() {
		trees = append(trees, &artifact.Namespace{
			Name:     ns,
			Children: []artifact.Artifact{gen.Generate(blk, scope.Empty())},
			Line:     blk.Pos.Line,
		})
	}
	return f, trees, nil
}

// Compile builds and renders a scenario file.
func Compile(filename string, src []byte, opts Options) (*Result, error) {
	f, trees, err := Build(filename, src, opts)
	if err != nil {
		return nil, err
	}

	decls := make([]string, 0, len(f.Decls()))
	for _, d := range f.Decls() {
		decls = append(decls, d.Text)
	}

	out, err := render.Go(render.Unit{
		Package: f.Package,
		Source:  filepath.Base(filename),
		Decls:   decls,
		Trees:   trees,
	}, opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, err)
	}

	res := &Result{
		Package:   f.Package,
		Namespace: Namespace(filename),
		Trees:     trees,
		Output:    out,
	}
	for _, tree := range trees {
		for _, p := range artifact.Procedures(tree) {
			name := render.TestName(p, opts.Layout)
			source, err := render.Procedure(p, opts.Layout)
			if err != nil {
				return nil, fmt.Errorf("compiling %s: %w", filename, err)
			}
			res.Procedures = append(res.Procedures, Procedure{
				Name:   name,
				Path:   strings.Join(p.Segments(), "/"),
				Marker: p.Procedure.Annotation.Marker(),
				Line:   p.Procedure.Line,
				Source: source,
			})
		}
	}
	return res, nil
}
