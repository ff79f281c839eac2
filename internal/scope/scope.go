// Package scope accumulates the statements that must wrap a leaf: for every
// level between the root and the leaf, the sibling statements positioned
// before and after the branch being descended.
package scope

import (
	"github.com/chriserin/catchr/internal/artifact"
	"github.com/chriserin/catchr/internal/parser"
)

// Frame is the framing contributed by one level of nesting.
type Frame struct {
	Before []*parser.Statement
	After  []*parser.Statement
}

// Scope is an immutable stack of frames, outermost first. Extending a scope
// never changes the receiver, so sibling branches extending the same parent
// scope cannot observe each other.
type Scope struct {
	frames []Frame
}

// Empty returns a scope with no frames.
func Empty() Scope { return Scope{} }

// Extend returns s with one more innermost frame.
func (s Scope) Extend(before, after []*parser.Statement) Scope {
	frames := make([]Frame, len(s.frames), len(s.frames)+1)
	copy(frames, s.frames)
	return Scope{frames: append(frames, Frame{Before: before, After: after})}
}

// Depth is the number of frames.
func (s Scope) Depth() int { return len(s.frames) }

// Frames returns a copy of the frames, outermost first.
func (s Scope) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Apply renders leaf inside every frame. The leaf statements form the
// innermost block; each frame, innermost to outermost, wraps the previous
// result as { before; previous; after }. Before statements therefore run
// outermost first and after statements innermost first.
func (s Scope) Apply(leaf []*parser.Statement) artifact.Block {
	out := block(leaf)
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		next := make(artifact.Block, 0, len(f.Before)+len(f.After)+1)
		next = append(next, block(f.Before)...)
		next = append(next, out)
		next = append(next, block(f.After)...)
		out = next
	}
	return out
}

func block(stmts []*parser.Statement) artifact.Block {
	out := make(artifact.Block, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, &artifact.Stmt{Text: s.Text})
	}
	return out
}
