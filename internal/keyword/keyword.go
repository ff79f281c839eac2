// Package keyword holds the registry of block keywords recognised by the
// scenario parser and the naming prefix each of them contributes.
package keyword

import (
	"fmt"
	"go/token"
	"sort"
)

// Kind tags a block. It carries nothing but its naming prefix.
type Kind struct {
	word   string
	prefix string
}

// Built-in kinds.
var (
	Given   = Kind{word: "given", prefix: "given"}
	When    = Kind{word: "when", prefix: "when"}
	Then    = Kind{word: "then", prefix: "then"}
	Case    = Kind{word: "case", prefix: "case"}
	Section = Kind{word: "section", prefix: "section"}

	// Anonymous has no keyword and an empty prefix, so identifiers built
	// from it are the escaped name alone.
	Anonymous = Kind{}
)

// Prefix returns the lowercase word prepended to generated identifiers.
func (k Kind) Prefix() string { return k.prefix }

// Word returns the keyword that introduces the block in source text.
func (k Kind) Word() string { return k.word }

func (k Kind) String() string {
	if k.word == "" {
		return "anonymous"
	}
	return k.word
}

// Registry maps keywords to kinds. The zero value recognises nothing.
type Registry struct {
	kinds map[string]Kind
}

// Default returns a registry holding given, when, then, case and section.
func Default() Registry {
	r := Registry{kinds: make(map[string]Kind, 5)}
	for _, k := range []Kind{Given, When, Then, Case, Section} {
		r.kinds[k.word] = k
	}
	return r
}

// With returns a copy of r that also recognises word, naming its blocks
// with prefix. An empty prefix is reserved for [Anonymous]. Go keywords
// other than case are rejected: they begin ordinary statements.
func (r Registry) With(word, prefix string) (Registry, error) {
	if word == "" {
		return r, fmt.Errorf("keyword: empty keyword")
	}
	if !token.IsIdentifier(word) && word != Case.word {
		return r, fmt.Errorf("keyword %q: must be an identifier, not a Go keyword", word)
	}
	if prefix == "" {
		return r, fmt.Errorf("keyword %q: empty prefix", word)
	}
	if !isLowerWord(prefix) {
		return r, fmt.Errorf("keyword %q: prefix %q must be a lowercase word", word, prefix)
	}

	out := Registry{kinds: make(map[string]Kind, len(r.kinds)+1)}
	for w, k := range r.kinds {
		out.kinds[w] = k
	}
	out.kinds[word] = Kind{word: word, prefix: prefix}
	return out, nil
}

// Lookup reports the kind introduced by word. It never consumes input;
// unknown words are ordinary statement text.
func (r Registry) Lookup(word string) (Kind, bool) {
	k, ok := r.kinds[word]
	return k, ok
}

// Words returns the registered keywords in sorted order.
func (r Registry) Words() []string {
	words := make([]string, 0, len(r.kinds))
	for w := range r.kinds {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func isLowerWord(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}
	return true
}
