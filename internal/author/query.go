// Package author filters articles by the names of their authors.
package author

import (
	"strings"

	"github.com/matsen/teiextract/internal/article"
)

// Query is a parsed author filter. Surname is required for a match.
type Query struct {
	Forename string
	Surname  string
}

// ParseQuery reads "Surname", "Forename Surname" or "Surname, Forename".
// With several space-separated words the last one is the surname.
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if surname, forename, ok := strings.Cut(input, ","); ok && strings.TrimSpace(surname) != "" {
		return Query{
			Forename: strings.TrimSpace(forename),
			Surname:  strings.TrimSpace(surname),
		}
	}

	words := strings.Fields(input)
	last := len(words) - 1
	return Query{
		Forename: strings.Join(words[:last], " "),
		Surname:  words[last],
	}
}

// ParseQueries parses each non-empty input.
func ParseQueries(inputs []string) []Query {
	var out []Query
	for _, in := range inputs {
		if q := ParseQuery(in); !q.IsEmpty() {
			out = append(out, q)
		}
	}
	return out
}

// IsEmpty reports whether the query has no surname.
func (q Query) IsEmpty() bool {
	return q.Surname == ""
}

// Matches compares surnames case-insensitively and exactly, and forenames
// by case-insensitive prefix, so "Tim Yu" matches "Timothy C. Yu" but "Yu"
// does not match "Yujia".
func (q Query) Matches(a article.Author) bool {
	if q.IsEmpty() || !strings.EqualFold(q.Surname, a.PersonName.Surname) {
		return false
	}
	if q.Forename == "" {
		return true
	}
	if a.PersonName.FirstName == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(*a.PersonName.FirstName), strings.ToLower(q.Forename))
}

// MatchesAny reports whether some author matches q.
func (q Query) MatchesAny(authors []article.Author) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch reports whether every query matches at least one author.
func AllMatch(queries []Query, authors []article.Author) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}

// Filter keeps the items whose authors satisfy every query, up to limit
// (non-positive means no limit). Without queries items is returned as is.
func Filter[T any](items []T, queries []Query, authors func(T) []article.Author, limit int) []T {
	if len(queries) == 0 {
		return items
	}
	var out []T
	for _, item := range items {
		if !AllMatch(queries, authors(item)) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
