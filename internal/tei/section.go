package tei

import (
	"unicode/utf8"

	"github.com/matsen/teiextract/internal/article"
)

// Section parses a <div> (or any element holding <head> and <p>).
//
// The heading is taken from the first <head>. A numbered heading, or one
// starting with an ASCII letter, is recapitalized when it is entirely upper
// or lower case ("INTRODUCTION" becomes "Introduction"). Without a <head>
// the section is named defaultTitle; when that is empty too, the element is
// not a section and Section reports false. A section may have no paragraphs.
func Section(n Node, defaultTitle string) (*article.Section, bool) {
	if !n.Valid() {
		return nil, false
	}

	var section article.Section
	if head := n.Find("head"); head.Valid() {
		section.Title = headTitle(head)
	} else if defaultTitle != "" {
		section.Title = defaultTitle
	} else {
		return nil, false
	}

	for _, p := range n.FindAll("p") {
		section.Paragraphs = append(section.Paragraphs, RefText(p))
	}
	return &section, true
}

func headTitle(head Node) string {
	text := head.Text()
	if text == "" {
		return text
	}

	_, numbered := head.Attr("n")
	first, _ := utf8.DecodeRuneInString(text)
	if numbered || isASCIILetter(first) {
		if isUpper(text) || isLower(text) {
			return Capitalize(text)
		}
	}
	return text
}
