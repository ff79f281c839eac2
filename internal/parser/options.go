package parser

import "github.com/chriserin/catchr/internal/keyword"

// Option configures a parse.
type Option func(*config)

type config struct {
	filename string
	registry keyword.Registry
	grammar  Grammar
}

func newConfig(opts []Option) config {
	cfg := config{
		registry: keyword.Default(),
		grammar:  GoGrammar{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFilename sets the file name reported in error positions.
func WithFilename(name string) Option {
	return func(c *config) { c.filename = name }
}

// WithRegistry replaces the default keyword registry.
func WithRegistry(r keyword.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithGrammar replaces the statement and declaration validator.
func WithGrammar(g Grammar) Option {
	return func(c *config) { c.grammar = g }
}
