package parser

import (
	"bytes"
	"go/scanner"
	"go/token"
)

// lexeme is one Go token with the byte span it covers in the source.
type lexeme struct {
	tok token.Token
	lit string
	off int
	end int
	pos Position
}

// autoSemi reports whether l is a semicolon inserted by the scanner at a
// newline or at the end of input.
func (l lexeme) autoSemi() bool {
	return l.tok == token.SEMICOLON && l.lit != ";"
}

func (l lexeme) String() string {
	switch {
	case l.tok == token.EOF:
		return "end of input"
	case l.autoSemi():
		return "newline"
	case l.lit != "":
		return l.lit
	default:
		return l.tok.String()
	}
}

// lex tokenises src with the Go scanner. Comments are dropped; the first
// lexical error aborts.
func lex(filename string, src []byte) ([]lexeme, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var first *ParseError
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		if first == nil {
			first = errorf(InvalidKeyword, toPosition(pos), "%s", msg)
		}
	}, 0)

	var out []lexeme
	for {
		p, tok, lit := s.Scan()
		off := file.Offset(p)
		out = append(out, lexeme{
			tok: tok,
			lit: lit,
			off: off,
			end: off + width(tok, lit, src[off:]),
			pos: toPosition(file.Position(p)),
		})
		if tok == token.EOF {
			break
		}
	}
	if first != nil {
		return nil, first
	}
	return out, nil
}

// width is the number of source bytes a token occupies.
func width(tok token.Token, lit string, rest []byte) int {
	switch {
	case tok == token.EOF:
		return 0
	case tok == token.SEMICOLON && lit != ";":
		return 0
	case tok == token.STRING && len(lit) > 0 && lit[0] == '`':
		// raw strings lose carriage returns in lit
		if i := bytes.IndexByte(rest[1:], '`'); i >= 0 {
			return i + 2
		}
		return len(rest)
	case lit != "":
		return len(lit)
	default:
		return len(tok.String())
	}
}

func toPosition(p token.Position) Position {
	return Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}
