// Package export renders extracted articles in bibliography formats.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/matsen/teiextract/internal/article"
)

// Field is a single "name = {value}" line of an entry.
type Field struct {
	Name  string
	Value string
}

// Entry is a BibTeX entry. Field values are already LaTeX-escaped.
type Entry struct {
	Type   string
	Key    string
	Fields []Field
}

// Field returns the value of the named field, or "".
func (e Entry) Field(name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// String renders the entry.
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.Key)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "  %s = {%s},\n", f.Name, f.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Format renders entries separated by blank lines.
func Format(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "\n")
}

// FromCitation converts a citation to a BibTeX entry.
func FromCitation(key string, c article.Citation) Entry {
	entryType := determineEntryType(c)
	e := Entry{Type: entryType, Key: key}
	add := func(name, value string) {
		if value != "" {
			e.Fields = append(e.Fields, Field{Name: name, Value: value})
		}
	}

	add("author", formatAuthors(c.Authors))
	add("title", escapeLatex(c.Title))

	if entryType == "inproceedings" {
		venue := deref(c.Series)
		if venue == "" {
			venue = deref(c.Journal)
		}
		add("booktitle", escapeLatex(venue))
	} else {
		add("journal", escapeLatex(deref(c.Journal)))
		add("series", escapeLatex(deref(c.Series)))
	}
	add("publisher", escapeLatex(deref(c.Publisher)))

	if c.Scope != nil {
		if c.Scope.Volume != nil {
			add("volume", strconv.Itoa(*c.Scope.Volume))
		}
		if p := c.Scope.Pages; p != nil {
			if p.From == p.To {
				add("pages", strconv.Itoa(p.From))
			} else {
				add("pages", fmt.Sprintf("%d--%d", p.From, p.To))
			}
		}
	}

	if c.Date != nil {
		add("year", c.Date.Year)
		add("month", deref(c.Date.Month))
	}

	if c.IDs != nil {
		add("doi", deref(c.IDs.DOI))
		if arxiv := deref(c.IDs.ArXiv); arxiv != "" {
			add("eprint", arxiv)
			add("archiveprefix", "arXiv")
		}
	}
	add("url", deref(c.Target))

	return e
}

// CitationToBibTeX converts a citation to BibTeX text.
func CitationToBibTeX(key string, c article.Citation) string {
	return FromCitation(key, c).String()
}

// FromArticle converts the article bibliography and every citation.
// The article entry comes first, citations follow in key order. Keys are
// generated from author, year and title; id is the fallback prefix.
func FromArticle(id string, a *article.Article) []Entry {
	keys := newKeySet()
	entries := []Entry{FromCitation(keys.unique(CitationKey(a.Bibliography, id)), a.Bibliography)}

	ids := make([]string, 0, len(a.Citations))
	for k := range a.Citations {
		ids = append(ids, k)
	}
	sort.Strings(ids)

	for _, k := range ids {
		c := a.Citations[k]
		key := keys.unique(CitationKey(c, id+"-"+k))
		entries = append(entries, FromCitation(key, c))
	}
	return entries
}

// ArticleToBibTeX converts an article and its citations to BibTeX text.
func ArticleToBibTeX(id string, a *article.Article) string {
	return Format(FromArticle(id, a))
}

// CitationKey builds a key like "Felsenstein1981evolutionary". Without a
// surname it returns fallback.
func CitationKey(c article.Citation, fallback string) string {
	if len(c.Authors) == 0 {
		return fallback
	}
	surname := keyPart(c.Authors[0].PersonName.Surname)
	if surname == "" {
		return fallback
	}

	key := surname
	if c.Date != nil {
		key += keyPart(c.Date.Year)
	}
	for _, word := range strings.Fields(c.Title) {
		if w := strings.ToLower(keyPart(word)); len(w) > 3 {
			key += w
			break
		}
	}
	return key
}

// keyPart keeps the letters and digits of s.
func keyPart(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}

type keySet map[string]bool

func newKeySet() keySet {
	return make(keySet)
}

// unique returns key, or key with a letter suffix when it was already used.
func (s keySet) unique(key string) string {
	candidate := key
	for i := 0; s[candidate]; i++ {
		candidate = key + suffix(i)
	}
	s[candidate] = true
	return candidate
}

func suffix(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return strconv.Itoa(i)
}

// determineEntryType returns the BibTeX entry type for a citation.
func determineEntryType(c article.Citation) string {
	if c.Series != nil {
		return "inproceedings"
	}

	venue := strings.ToLower(deref(c.Journal))

	// Preprints
	if strings.Contains(venue, "arxiv") ||
		strings.Contains(venue, "biorxiv") ||
		strings.Contains(venue, "medrxiv") {
		return "article"
	}

	// Conference proceedings
	if strings.Contains(venue, "proceedings") ||
		strings.Contains(venue, "conference") ||
		strings.Contains(venue, "workshop") ||
		strings.Contains(venue, "symposium") {
		return "inproceedings"
	}

	return "article"
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []article.Author) string {
	var formatted []string
	for _, a := range authors {
		last := escapeLatex(a.PersonName.Surname)
		if first := deref(a.PersonName.FirstName); first != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", last, escapeLatex(first)))
		} else {
			formatted = append(formatted, last)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
