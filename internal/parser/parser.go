// Package parser reads scenario DSL text into a tree of blocks. Blocks are
// introduced by a registered keyword, a quoted name and a braced body; every
// other unit of text is an opaque Go statement.
package parser

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/chriserin/catchr/internal/keyword"
)

type parser struct {
	src  []byte
	toks []lexeme
	i    int
	cfg  config
}

func newParser(src []byte, opts []Option) (*parser, error) {
	cfg := newConfig(opts)
	toks, err := lex(cfg.filename, src)
	if err != nil {
		return nil, err
	}
	return &parser{src: src, toks: toks, cfg: cfg}, nil
}

// ParseBody parses src as the content of an outermost body.
func ParseBody(src []byte, opts ...Option) (Body, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return Body{}, err
	}
	return p.parseBody(nil)
}

// ParseBlock parses src as exactly one block.
func ParseBlock(src []byte, opts ...Option) (*Block, error) {
	p, err := newParser(src, opts)
	if err != nil {
		return nil, err
	}

	p.skipSemis()
	kind, ok := p.peekKind()
	if !ok {
		t := p.peek()
		return nil, errorf(InvalidKeyword, t.pos,
			"expected one of %s, found %s", strings.Join(p.cfg.registry.Words(), ", "), t)
	}
	blk, err := p.parseBlock(kind)
	if err != nil {
		return nil, err
	}

	p.skipSemis()
	if t := p.peek(); t.tok != token.EOF {
		return nil, errorf(InvalidKeyword, t.pos, "unexpected %s after block", t)
	}
	return blk, nil
}

func (p *parser) peek() lexeme { return p.toks[p.i] }

func (p *parser) next() lexeme {
	t := p.toks[p.i]
	if t.tok != token.EOF {
		p.i++
	}
	return t
}

func (p *parser) skipSemis() {
	for p.peek().tok == token.SEMICOLON {
		p.next()
	}
}

func word(t lexeme) string {
	if t.tok == token.IDENT || t.tok.IsKeyword() {
		return t.lit
	}
	return ""
}

func (p *parser) peekKind() (keyword.Kind, bool) {
	w := word(p.peek())
	if w == "" {
		return keyword.Kind{}, false
	}
	return p.cfg.registry.Lookup(w)
}

// parseBody reads items until end of input, or until the brace matching
// open when open is non-nil.
func (p *parser) parseBody(open *lexeme) (Body, error) {
	var body Body
	for {
		t := p.peek()
		switch t.tok {
		case token.SEMICOLON:
			p.next()
			continue
		case token.EOF:
			if open != nil {
				return Body{}, errorf(UnterminatedBlock, open.pos, "block body is never closed")
			}
			return body, nil
		case token.RBRACE:
			if open != nil {
				p.next()
				return body, nil
			}
			return Body{}, errorf(InvalidKeyword, t.pos, "unexpected }")
		}

		if kind, ok := p.peekKind(); ok {
			blk, err := p.parseBlock(kind)
			if err != nil {
				return Body{}, err
			}
			body.Items = append(body.Items, blk)
			continue
		}

		text, pos, err := p.parseUnit(p.cfg.grammar.Statement)
		if err != nil {
			return Body{}, err
		}
		body.Items = append(body.Items, &Statement{Text: text, Pos: pos})
	}
}

func (p *parser) parseBlock(kind keyword.Kind) (*Block, error) {
	kw := p.next()

	nameTok := p.peek()
	if nameTok.tok != token.STRING {
		return nil, errorf(InvalidName, nameTok.pos,
			"%s must be followed by a quoted name, found %s", kw.lit, nameTok)
	}
	p.next()
	name, err := strconv.Unquote(nameTok.lit)
	if err != nil {
		return nil, errorf(InvalidName, nameTok.pos, "%s: %v", nameTok.lit, err)
	}

	for p.peek().autoSemi() {
		p.next()
	}
	open := p.peek()
	if open.tok != token.LBRACE {
		return nil, errorf(UnterminatedBlock, open.pos,
			"expected { after %s %s, found %s", kw.lit, nameTok.lit, open)
	}
	p.next()

	body, err := p.parseBody(&open)
	if err != nil {
		return nil, err
	}
	return &Block{Kind: kind, Name: name, Body: body, Pos: kw.pos}, nil
}

// parseUnit consumes one statement or declaration: every token up to a
// semicolon or closing brace outside any bracket. The text is checked by
// validate before it is returned.
func (p *parser) parseUnit(validate func(string) error) (string, Position, error) {
	startIdx := p.i
	start := p.peek()
	last := start

	var opens []lexeme
loop:
	for {
		t := p.peek()
		switch t.tok {
		case token.EOF:
			if len(opens) > 0 {
				top := opens[len(opens)-1]
				return "", Position{}, errorf(UnterminatedBlock, top.pos, "%s is never closed", top)
			}
			break loop
		case token.SEMICOLON:
			if len(opens) == 0 {
				p.next()
				break loop
			}
		case token.RBRACE:
			if len(opens) == 0 {
				break loop
			}
		case token.LPAREN, token.LBRACK, token.LBRACE:
			opens = append(opens, t)
		}

		if closer(t.tok) {
			if len(opens) == 0 {
				return "", Position{}, errorf(InvalidKeyword, t.pos, "unexpected %s", t)
			}
			top := opens[len(opens)-1]
			if !matches(top.tok, t.tok) {
				return "", Position{}, errorf(MalformedStatement, t.pos,
					"%s opened at %d:%d closed by %s", top, top.pos.Line, top.pos.Column, t)
			}
			opens = opens[:len(opens)-1]
		}
		last = p.next()
	}

	text := string(p.src[start.off:last.end])

	if looksLikeBlock(p.toks[startIdx:]) {
		return "", Position{}, errorf(InvalidKeyword, start.pos,
			"unknown block keyword %q (expected one of %s)", start.lit, strings.Join(p.cfg.registry.Words(), ", "))
	}
	if err := validate(text); err != nil {
		return "", Position{}, errorf(MalformedStatement, start.pos, "%v", err)
	}
	return text, start.pos, nil
}

// looksLikeBlock matches `word "name" {`, which is never valid Go.
func looksLikeBlock(toks []lexeme) bool {
	if len(toks) < 3 || word(toks[0]) == "" || toks[1].tok != token.STRING {
		return false
	}
	i := 2
	for i < len(toks)-1 && toks[i].autoSemi() {
		i++
	}
	return toks[i].tok == token.LBRACE
}

func closer(t token.Token) bool {
	return t == token.RPAREN || t == token.RBRACK || t == token.RBRACE
}

func matches(open, close token.Token) bool {
	switch open {
	case token.LPAREN:
		return close == token.RPAREN
	case token.LBRACK:
		return close == token.RBRACK
	case token.LBRACE:
		return close == token.RBRACE
	}
	return false
}
