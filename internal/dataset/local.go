// Package dataset provides suggestion sources for the menu.
package dataset

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"

	"typeahead/internal/domain"
)

// Local matches a query against an in-memory list. An entry matches when
// every query token is a case-folded prefix of one of the entry's tokens.
type Local struct {
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	suggestion domain.Suggestion
	tokens     []string
}

// NewLocal indexes suggestions in the given order
func NewLocal(suggestions []domain.Suggestion) *Local {
	l := &Local{}
	l.Reset(suggestions)
	return l
}

// Words wraps plain strings as suggestions whose object is the string
func Words(values ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Suggestion{Value: v, Object: v})
	}
	return out
}

// Reset replaces the indexed suggestions
func (l *Local) Reset(suggestions []domain.Suggestion) {
	entries := make([]entry, 0, len(suggestions))
	for _, s := range suggestions {
		entries = append(entries, entry{suggestion: s, tokens: tokenize(s.Value)})
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

// Len reports the number of indexed suggestions
func (l *Local) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Search returns every matching suggestion in index order. A blank query
// matches nothing.
func (l *Local) Search(query string) []domain.Suggestion {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.Suggestion
	for _, e := range l.entries {
		if matchesAll(queryTokens, e.tokens) {
			out = append(out, e.suggestion)
		}
	}
	return out
}

func matchesAll(queryTokens, tokens []string) bool {
	for _, q := range queryTokens {
		found := false
		for _, t := range tokens {
			if strings.HasPrefix(t, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// tokenize splits on whitespace and folds case. A Caser is not safe for
// concurrent use so each call gets its own.
func tokenize(s string) []string {
	fold := cases.Fold()
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	for i, f := range fields {
		fields[i] = fold.String(f)
	}
	return fields
}
