package parser

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/scanner"
	"go/token"
)

// Grammar validates opaque host-language units. The parser only finds unit
// boundaries; whether a unit is well formed is the grammar's decision.
type Grammar interface {
	// Statement checks that text is exactly one statement.
	Statement(text string) error
	// Decl checks that text is exactly one top-level declaration.
	Decl(text string) error
}

// GoGrammar validates units with go/parser.
type GoGrammar struct{}

func (GoGrammar) Statement(text string) error {
	src := "package p\nfunc _() {\n" + text + "\n}\n"
	f, err := goparser.ParseFile(token.NewFileSet(), "", src, goparser.SkipObjectResolution)
	if err != nil {
		return firstError(err)
	}
	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return fmt.Errorf("not a statement")
	}
	if n := len(fn.Body.List); n != 1 {
		return fmt.Errorf("expected one statement, found %d", n)
	}
	return nil
}

func (GoGrammar) Decl(text string) error {
	src := "package p\n" + text + "\n"
	f, err := goparser.ParseFile(token.NewFileSet(), "", src, goparser.SkipObjectResolution)
	if err != nil {
		return firstError(err)
	}
	if n := len(f.Decls); n != 1 {
		return fmt.Errorf("expected one declaration, found %d", n)
	}
	return nil
}

func firstError(err error) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return errors.New(list[0].Msg)
	}
	return err
}
