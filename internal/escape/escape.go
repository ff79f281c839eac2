// Package escape turns scenario display names into identifier fragments.
package escape

import "strings"

// Separator replaces every character that is not an ASCII letter or digit.
const Separator = '_'

// Empty is the fragment used for an empty display name.
const Empty = "empty"

// Name lowercases s, maps every non-alphanumeric character to [Separator],
// collapses separator runs and strips a trailing separator. A leading
// separator is kept; callers prefix the result with a kind word.
func Name(s string) string {
	if s == "" {
		return Empty
	}

	var b strings.Builder
	b.Grow(len(s))

	prevSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevSep = false
		case !prevSep:
			b.WriteRune(Separator)
			prevSep = true
		}
	}

	return strings.TrimSuffix(b.String(), string(Separator))
}
