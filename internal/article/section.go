package article

import (
	"fmt"
	"strings"
	"unicode"
)

// Section represents a <div> element with a <head>, or an abstract.
type Section struct {
	Title      string    `json:"title"`
	Paragraphs []RefText `json:"paragraphs,omitempty"`
}

// Text returns the section paragraphs as plain text.
func (s Section) Text() string {
	var b strings.Builder
	for _, p := range s.Paragraphs {
		b.WriteString(p.PlainText())
	}
	return b.String()
}

// RefText represents a <p> element with embedded <ref> elements.
type RefText struct {
	Text string `json:"text"`
	Refs []Ref  `json:"refs,omitempty"`
}

// Ref stores the position of a <ref> element within the owning RefText.
// Start and End are byte offsets into RefText.Text (half-open).
type Ref struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Marker *Marker `json:"marker,omitempty"`
	Target *string `json:"target,omitempty"`
}

// PlainText returns the text with every reference span removed.
// Trailing whitespace before each cut and at the end is trimmed.
func (r RefText) PlainText() string {
	if len(r.Refs) == 0 {
		return r.Text
	}

	var b strings.Builder
	left := 0
	for _, ref := range r.Refs {
		start := clamp(ref.Start, left, len(r.Text))
		end := clamp(ref.End, start, len(r.Text))
		b.WriteString(strings.TrimRightFunc(r.Text[left:start], unicode.IsSpace))
		left = end
	}
	b.WriteString(strings.TrimRightFunc(r.Text[left:], unicode.IsSpace))
	return b.String()
}

// Span returns the text covered by a reference.
func (r RefText) Span(ref Ref) string {
	start := clamp(ref.Start, 0, len(r.Text))
	end := clamp(ref.End, start, len(r.Text))
	return r.Text[start:end]
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Marker is the kind of structure a reference points to.
// See https://grobid.readthedocs.io/en/latest/training/fulltext/#markers-callouts-to-structures
type Marker string

const (
	MarkerBibr    Marker = "bibr"
	MarkerFigure  Marker = "figure"
	MarkerTable   Marker = "table"
	MarkerBox     Marker = "box"
	MarkerFormula Marker = "formula"
)

// Markers lists every known marker.
var Markers = []Marker{MarkerBibr, MarkerFigure, MarkerTable, MarkerBox, MarkerFormula}

// ParseMarker resolves a <ref type="..."> value. Unknown values return false.
func ParseMarker(s string) (Marker, bool) {
	for _, m := range Markers {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// MarkerOf returns a pointer to m, for building refs.
func MarkerOf(m Marker) *Marker {
	return &m
}

// UnmarshalText rejects markers outside the known set.
func (m *Marker) UnmarshalText(text []byte) error {
	parsed, ok := ParseMarker(string(text))
	if !ok {
		return fmt.Errorf("unknown marker %q", text)
	}
	*m = parsed
	return nil
}
