package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinimumSearchLength is the shortest query sent to the provider.
// Places with shorter names can still be found by adding a comma or a space
// after the name.
const DefaultMinimumSearchLength = 3

// Query is normalised user input.
type Query struct {
	// Text is the sanitised query text.
	Text string

	// Eligible reports whether Text is long enough to be searched.
	Eligible bool
}

// Length returns the effective length of the query in characters.
func (q Query) Length() int {
	return utf8.RuneCountInString(q.Text)
}

// IsEmpty returns true if nothing is left after normalisation.
func (q Query) IsEmpty() bool {
	return q.Text == ""
}

// NormalizeQuery trims raw input and removes every run of two or more
// whitespace characters. A single interior space is kept, longer runs are
// deleted outright rather than shrunk to one space.
func NormalizeQuery(raw string, minimumLength int) Query {
	if minimumLength <= 0 {
		minimumLength = DefaultMinimumSearchLength
	}

	trimmed := strings.TrimFunc(raw, isQuerySpace)

	var b strings.Builder
	b.Grow(len(trimmed))

	runStart := -1
	for i, r := range trimmed {
		if isQuerySpace(r) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			if utf8.RuneCountInString(trimmed[runStart:i]) == 1 {
				b.WriteString(trimmed[runStart:i])
			}
			runStart = -1
		}
		b.WriteRune(r)
	}

	q := Query{Text: b.String()}
	q.Eligible = q.Length() >= minimumLength
	return q
}

// isQuerySpace matches the characters treated as whitespace by the sanitiser.
func isQuerySpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF'
}
