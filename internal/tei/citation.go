package tei

import (
	"github.com/matsen/teiextract/internal/article"
)

// Citation parses a <biblStruct>.
//
// The title is the main title, falling back to the meeting (level="m")
// title. Journal and series titles are kept only when they differ from the
// title, since GROBID repeats the title at several levels.
func Citation(n Node) article.Citation {
	title := Title(n, Attr{Key: "type", Value: "main"})
	if title == "" {
		title = Title(n, Attr{Key: "level", Value: "m"})
	}

	citation := article.Citation{
		Title:     title,
		Authors:   Authors(n),
		Date:      Date(n),
		Target:    Target(n),
		Publisher: Publisher(n),
		Scope:     Scope(n),
	}

	ids := article.CitationIDs{
		DOI:   IDNo(n, Attr{Key: "type", Value: "DOI"}),
		ArXiv: IDNo(n, Attr{Key: "type", Value: "arXiv"}),
	}
	if !ids.IsEmpty() {
		citation.IDs = &ids
	}

	if journal := Title(n, Attr{Key: "level", Value: "j"}); journal != "" && journal != title {
		citation.Journal = article.String(journal)
	}
	if series := Title(n, Attr{Key: "level", Value: "s"}); series != "" && series != title {
		citation.Series = article.String(series)
	}

	return citation
}
