package artifact

import (
	"fmt"
	"sort"
)

// Annotation is the policy applied to every leaf procedure of one
// generation run. It names the marker the procedure carries and may adapt
// the body, for example to provide an execution context.
type Annotation interface {
	Marker() string
	Wrap(body Block) Block
}

// Sync is a plain test with no adaptation.
type Sync struct{}

func (Sync) Marker() string { return "sync" }
func (Sync) Wrap(body Block) Block { return body }

// Parallel marks the test as safe to run alongside others.
type Parallel struct{}

func (Parallel) Marker() string { return "parallel" }

func (Parallel) Wrap(body Block) Block {
	return prepend(body, "t.Parallel()")
}

// Context binds ctx to the test's context, cancelled when the test ends.
// The scoped body sits in its own block so scenarios may declare their own
// ctx.
type Context struct{}

func (Context) Marker() string { return "context" }

func (Context) Wrap(body Block) Block {
	return prepend(Block{body}, "ctx := t.Context()", "_ = ctx")
}

func prepend(body Block, stmts ...string) Block {
	out := make(Block, 0, len(stmts)+len(body))
	for _, s := range stmts {
		out = append(out, &Stmt{Text: s})
	}
	return append(out, body...)
}

var annotations = map[string]Annotation{
	Sync{}.Marker():     Sync{},
	Parallel{}.Marker(): Parallel{},
	Context{}.Marker():  Context{},
}

// AnnotationFor returns the built-in annotation with the given marker.
func AnnotationFor(marker string) (Annotation, error) {
	if a, ok := annotations[marker]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unknown mode %q (expected one of %v)", marker, Markers())
}

// Markers lists the built-in annotation markers.
func Markers() []string {
	out := make([]string, 0, len(annotations))
	for m := range annotations {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
