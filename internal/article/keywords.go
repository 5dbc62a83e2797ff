package article

import (
	"encoding/json"
	"sort"
)

// KeywordSet is an unordered set of normalized keywords.
// It serializes as a sorted JSON array.
type KeywordSet map[string]struct{}

// NewKeywordSet creates a set holding the given keywords.
func NewKeywordSet(keywords ...string) KeywordSet {
	s := make(KeywordSet, len(keywords))
	for _, k := range keywords {
		s.Add(k)
	}
	return s
}

// Add inserts a keyword.
func (s KeywordSet) Add(keyword string) {
	s[keyword] = struct{}{}
}

// Has reports whether the keyword is in the set.
func (s KeywordSet) Has(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Sorted returns the keywords in lexical order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s KeywordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of keywords.
func (s *KeywordSet) UnmarshalJSON(data []byte) error {
	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return err
	}
	*s = NewKeywordSet(keywords...)
	return nil
}
