package parser

import (
	"go/token"
)

// File is a whole scenario source file: a Go package clause followed by
// ordinary declarations and top-level blocks in any order.
type File struct {
	Package string
	Items   []TopLevel
}

// TopLevel is either a *Decl or a *Block.
type TopLevel interface {
	topLevel()
}

// Decl is an ordinary Go declaration forwarded to the output unchanged.
type Decl struct {
	Text string
	Pos  Position
}

func (*Decl) topLevel()  {}
func (*Block) topLevel() {}

// Blocks returns the top-level blocks in declaration order.
func (f *File) Blocks() []*Block {
	var out []*Block
	for _, it := range f.Items {
		if blk, ok := it.(*Block); ok {
			out = append(out, blk)
		}
	}
	return out
}

// Decls returns the forwarded declarations in order.
func (f *File) Decls() []*Decl {
	var out []*Decl
	for _, it := range f.Items {
		if d, ok := it.(*Decl); ok {
			out = append(out, d)
		}
	}
	return out
}

// ParseFile parses a scenario source file. Declarations are validated by
// the grammar; blocks are parsed exactly as [ParseBlock] would.
func ParseFile(src []byte, opts ...Option) (*File, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}

	p.skipSemis()
	pkg, err := p.parsePackage()
	if err != nil {
		return nil, err
	}
	f := &File{Package: pkg}

	for {
		t := p.peek()
		switch t.tok {
		case token.SEMICOLON:
			p.next()
			continue
		case token.EOF:
			return f, nil
		case token.RBRACE:
			return nil, errorf(InvalidKeyword, t.pos, "unexpected }")
		}

		if kind, ok := p.peekKind(); ok {
			blk, err := p.parseBlock(kind)
			if err != nil {
				return nil, err
			}
			f.Items = append(f.Items, blk)
			continue
		}

		text, pos, err := p.parseUnit(p.cfg.grammar.Decl)
		if err != nil {
			return nil, err
		}
		f.Items = append(f.Items, &Decl{Text: text, Pos: pos})
	}
}

func (p *parser) parsePackage() (string, error) {
	kw := p.peek()
	if kw.tok != token.PACKAGE {
		return "", errorf(MalformedStatement, kw.pos, "expected package clause, found %s", kw)
	}
	p.next()

	name := p.peek()
	if name.tok != token.IDENT {
		return "", errorf(MalformedStatement, name.pos, "expected package name, found %s", name)
	}
	p.next()

	if t := p.peek(); t.tok != token.SEMICOLON && t.tok != token.EOF {
		return "", errorf(MalformedStatement, t.pos, "unexpected %s after package clause", t)
	}
	return name.lit, nil
}
