package parser

import "github.com/chriserin/catchr/internal/keyword"

// Position locates a token in the source text. Line and Column are 1-based.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Block is a named, kinded scenario node. It is never mutated after parsing.
type Block struct {
	Kind keyword.Kind
	Name string // raw display name, escaping happens at generation
	Body Body
	Pos  Position
}

// Item is either a *Statement or a *Block.
type Item interface {
	item()
}

// Statement is one complete, opaque Go statement.
type Statement struct {
	Text string
	Pos  Position
}

func (*Statement) item() {}
func (*Block) item()     {}

// Body is the ordered content of a block. Order is execution order.
type Body struct {
	Items []Item
}

// IsLeaf reports whether the body holds no nested blocks. An empty body is
// a leaf.
func (b Body) IsLeaf() bool {
	for _, it := range b.Items {
		if _, ok := it.(*Block); ok {
			return false
		}
	}
	return true
}

// Statements returns every direct statement in order.
func (b Body) Statements() []*Statement {
	return b.statements(0, len(b.Items))
}

// Before returns the direct statements positioned before item i.
func (b Body) Before(i int) []*Statement {
	return b.statements(0, i)
}

// After returns the direct statements positioned after item i.
func (b Body) After(i int) []*Statement {
	return b.statements(i+1, len(b.Items))
}

// Blocks returns the directly nested blocks in declaration order.
func (b Body) Blocks() []*Block {
	var out []*Block
	for _, it := range b.Items {
		if blk, ok := it.(*Block); ok {
			out = append(out, blk)
		}
	}
	return out
}

func (b Body) statements(from, to int) []*Statement {
	var out []*Statement
	for _, it := range b.Items[from:to] {
		if s, ok := it.(*Statement); ok {
			out = append(out, s)
		}
	}
	return out
}

// Leaves counts the leaf blocks reachable from blk, including blk itself.
func Leaves(blk *Block) int {
	if blk.Body.IsLeaf() {
		return 1
	}
	n := 0
	for _, child := range blk.Body.Blocks() {
		n += Leaves(child)
	}
	return n
}
