package input

import (
	"strings"
	"unicode"
)

// NormalizeQuery strips leading whitespace and condenses every run of two or
// more whitespace characters into a single space. It is used only to decide
// whether two queries are equivalent; queries are stored as typed.
func NormalizeQuery(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		j := i
		for j+1 < len(runes) && unicode.IsSpace(runes[j+1]) {
			j++
		}
		if j > i {
			b.WriteByte(' ')
			i = j
			continue
		}
		// a lone whitespace character is kept as is
		b.WriteRune(r)
	}
	return b.String()
}

func areQueriesEquivalent(a, b string) bool {
	return NormalizeQuery(a) == NormalizeQuery(b)
}
