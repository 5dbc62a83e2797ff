package article

// Citation represents a <biblStruct> element.
type Citation struct {
	Title     string       `json:"title"`
	Authors   []Author     `json:"authors,omitempty"`
	Date      *Date        `json:"date,omitempty"`
	IDs       *CitationIDs `json:"ids,omitempty"`
	Target    *string      `json:"target,omitempty"`
	Publisher *string      `json:"publisher,omitempty"`
	Journal   *string      `json:"journal,omitempty"`
	Series    *string      `json:"series,omitempty"`
	Scope     *Scope       `json:"scope,omitempty"`
}

// CitationIDs holds the <idno> values of a citation.
type CitationIDs struct {
	DOI   *string `json:"doi,omitempty"`
	ArXiv *string `json:"arxiv,omitempty"`
}

// IsEmpty reports whether no identifier is set.
func (c CitationIDs) IsEmpty() bool {
	return allUnset(c)
}

// Date is the "when" attribute of a <date> element. Tokens are kept as
// written; they are not validated as a calendar date.
type Date struct {
	Year  string  `json:"year"`
	Month *string `json:"month,omitempty"`
	Day   *string `json:"day,omitempty"`
}

// Scope represents the <biblScope> elements of a citation.
type Scope struct {
	Volume *int       `json:"volume,omitempty"`
	Pages  *PageRange `json:"pages,omitempty"`
}

// IsEmpty reports whether neither volume nor pages are set.
func (s Scope) IsEmpty() bool {
	return allUnset(s)
}

// PageRange is the from/to page extent of a cited work.
type PageRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}
