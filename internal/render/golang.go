// Package render turns artifacts into Go test source and text outlines.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/chriserin/catchr/internal/artifact"
)

// Layout selects how namespaces map onto Go test functions.
type Layout int

const (
	// Flat emits one top-level test function per procedure, named by its
	// full namespace path.
	Flat Layout = iota
	// Subtests emits one test function per top-level tree and nests the
	// remaining levels with t.Run.
	Subtests
)

func (l Layout) String() string {
	switch l {
	case Flat:
		return "flat"
	case Subtests:
		return "subtests"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout parses "flat" or "subtests".
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "flat", "":
		return Flat, nil
	case "subtests":
		return Subtests, nil
	}
	return Flat, fmt.Errorf("unknown layout %q (expected flat or subtests)", s)
}

// PathSeparator joins namespace segments in flat function names.
const PathSeparator = "__"

// Unit is the content of one generated file.
type Unit struct {
	Package string
	Source  string   // file the unit was compiled from, named in the header
	Decls   []string // forwarded verbatim, in order
	Trees   []artifact.Artifact
}

// Go renders u as a gofmt-formatted Go file. Imports the generated code
// needs, such as testing, are added and unused ones removed.
func Go(u Unit, layout Layout) ([]byte, error) {
	f := jen.NewFile(u.Package)
	f.HeaderComment(header(u.Source))

	for _, d := range u.Decls {
		f.Id(d)
		f.Line()
	}

	for _, tree := range u.Trees {
		for _, fn := range functions(tree, layout) {
			f.Add(fn)
			f.Line()
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", u.Package, err)
	}

	out, err := imports.Process(u.Package+"_test.go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("fixing imports: %w", err)
	}
	return out, nil
}

// FuncName is the flat test function name for a procedure path.
func FuncName(p artifact.Path) string {
	return "Test_" + strings.Join(p.Segments(), PathSeparator)
}

// TestName is the name go test reports for the procedure at p: the flat
// function name, or under [Subtests] the enclosing function followed by
// the t.Run names.
func TestName(p artifact.Path, layout Layout) string {
	fn, runs := split(p, layout)
	return strings.Join(append([]string{fn}, runs...), "/")
}

// Procedure renders the procedure at p as it appears in the generated
// file. Under [Subtests] it is the enclosing function reduced to the
// t.Run calls leading to this procedure.
func Procedure(p artifact.Path, layout Layout) (string, error) {
	fn, runs := split(p, layout)

	body := code(p.Procedure.Body)
	for i := len(runs) - 1; i >= 0; i-- {
		body = []jen.Code{subtest(runs[i], body)}
	}

	var buf bytes.Buffer
	if err := testFunc(fn, body...).Render(&buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", fn, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// split returns the test function name holding the procedure at p and the
// t.Run names nested inside it.
func split(p artifact.Path, layout Layout) (string, []string) {
	if layout != Subtests {
		return FuncName(p), nil
	}
	segs := p.Segments()
	if len(segs) == 1 {
		return "Test_" + segs[0], nil
	}
	return "Test_" + segs[0] + PathSeparator + segs[1], segs[2:]
}

func functions(tree artifact.Artifact, layout Layout) []jen.Code {
	var out []jen.Code
	switch layout {
	case Subtests:
		ns, ok := tree.(*artifact.Namespace)
		if !ok {
			return []jen.Code{subtestFunc([]string{tree.Ident()}, tree)}
		}
		for _, child := range ns.Children {
			out = append(out, subtestFunc([]string{ns.Name, child.Ident()}, child))
		}
	default:
		for _, p := range artifact.Procedures(tree) {
			out = append(out, testFunc(FuncName(p), code(p.Procedure.Body)...))
		}
	}
	return out
}

func subtestFunc(segments []string, a artifact.Artifact) jen.Code {
	return testFunc("Test_"+strings.Join(segments, PathSeparator), subtestBody(a)...)
}

func subtestBody(a artifact.Artifact) []jen.Code {
	switch a := a.(type) {
	case *artifact.Procedure:
		return code(a.Body)
	case *artifact.Namespace:
		out := make([]jen.Code, 0, len(a.Children))
		for _, child := range a.Children {
			out = append(out, subtest(child.Ident(), subtestBody(child)))
		}
		return out
	}
	return nil
}

func subtest(name string, body []jen.Code) jen.Code {
	return jen.Id("t").Dot("Run").Call(
		jen.Lit(name),
		jen.Func().Params(testingParam()).Block(body...),
	)
}

func testFunc(name string, body ...jen.Code) *jen.Statement {
	return jen.Func().Id(name).Params(testingParam()).Block(body...)
}

// testingParam leaves testing unqualified so the import is resolved
// against the forwarded declarations rather than duplicated.
func testingParam() *jen.Statement {
	return jen.Id("t").Op("*").Id("testing.T")
}

func code(b artifact.Block) []jen.Code {
	out := make([]jen.Code, 0, len(b))
	for _, c := range b {
		switch c := c.(type) {
		case *artifact.Stmt:
			out = append(out, jen.Id(c.Text))
		case artifact.Block:
			out = append(out, jen.Block(code(c)...))
		}
	}
	return out
}

func header(source string) string {
	if source == "" {
		return "Code generated by catchr. DO NOT EDIT."
	}
	return fmt.Sprintf("Code generated by catchr from %s. DO NOT EDIT.", source)
}
