package parser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	InvalidKeyword ErrorKind = iota
	InvalidName
	UnterminatedBlock
	MalformedStatement
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidKeyword:
		return "invalid keyword"
	case InvalidName:
		return "invalid name"
	case UnterminatedBlock:
		return "unterminated block"
	case MalformedStatement:
		return "malformed statement"
	default:
		return "parse error"
	}
}

// Sentinels for errors.Is against a *ParseError of the matching kind.
var (
	ErrInvalidKeyword     = errors.New(InvalidKeyword.String())
	ErrInvalidName        = errors.New(InvalidName.String())
	ErrUnterminatedBlock  = errors.New(UnterminatedBlock.String())
	ErrMalformedStatement = errors.New(MalformedStatement.String())
)

// ParseError is fatal: a parse either yields a whole tree or one ParseError.
type ParseError struct {
	Kind    ErrorKind
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename != "" {
		loc = e.Pos.Filename + ":" + loc
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Kind, e.Message)
}

// Is matches the sentinel for e.Kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrInvalidKeyword:
		return e.Kind == InvalidKeyword
	case ErrInvalidName:
		return e.Kind == InvalidName
	case ErrUnterminatedBlock:
		return e.Kind == UnterminatedBlock
	case ErrMalformedStatement:
		return e.Kind == MalformedStatement
	}
	return false
}

func errorf(kind ErrorKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
