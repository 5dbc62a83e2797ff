package tei

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/teiextract/internal/article"
)

// The helpers below render model values back into the TEI shape GROBID
// produces, so tests can check that parsing recovers what was rendered.

func esc(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func attr(key, value string) string {
	return fmt.Sprintf(` %s="%s"`, key, esc(value))
}

func buildArticle(a article.Article) []byte {
	var b strings.Builder
	b.WriteString(`<TEI xmlns="http://www.tei-c.org/ns/1.0">`)
	b.WriteString(`<teiHeader><fileDesc><sourceDesc>`)
	b.WriteString(buildCitation(a.Bibliography, ""))
	b.WriteString(`</sourceDesc></fileDesc><profileDesc>`)
	if len(a.Keywords) > 0 {
		b.WriteString(`<textClass><keywords>`)
		for _, k := range a.Keywords.Sorted() {
			b.WriteString(`<term>` + esc(k) + `</term>`)
		}
		b.WriteString(`</keywords></textClass>`)
	}
	if a.Abstract != nil {
		b.WriteString(`<abstract>`)
		if a.Abstract.Title != AbstractTitle {
			b.WriteString(buildSection(*a.Abstract))
		} else {
			b.WriteString(`<div>`)
			for _, p := range a.Abstract.Paragraphs {
				b.WriteString(buildParagraph(p))
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</abstract>`)
	}
	b.WriteString(`</profileDesc></teiHeader>`)

	b.WriteString(`<text><body>`)
	for _, s := range a.Sections {
		b.WriteString(buildSection(s))
	}
	for _, id := range sortedKeys(a.Tables) {
		b.WriteString(buildTable(a.Tables[id], id))
	}
	b.WriteString(`</body><back><div type="references"><listBibl>`)
	for _, id := range sortedKeys(a.Citations) {
		b.WriteString(buildCitation(a.Citations[id], id))
	}
	b.WriteString(`</listBibl></div></back></text></TEI>`)
	return []byte(b.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildCitation(c article.Citation, id string) string {
	var b strings.Builder
	b.WriteString(`<biblStruct`)
	if id != "" {
		b.WriteString(attr("xml:id", id))
	}
	b.WriteString(`><analytic>`)
	b.WriteString(`<title level="a" type="main">` + esc(c.Title) + `</title>`)
	b.WriteString(buildAuthors(c.Authors))
	if c.IDs != nil {
		if c.IDs.DOI != nil {
			b.WriteString(`<idno type="DOI">` + esc(*c.IDs.DOI) + `</idno>`)
		}
		if c.IDs.ArXiv != nil {
			b.WriteString(`<idno type="arXiv">` + esc(*c.IDs.ArXiv) + `</idno>`)
		}
	}
	if c.Target != nil {
		b.WriteString(`<ptr` + attr("target", *c.Target) + `/>`)
	}
	b.WriteString(`</analytic><monogr>`)
	if c.Journal != nil {
		b.WriteString(`<title level="j">` + esc(*c.Journal) + `</title>`)
	}
	if c.Series != nil {
		b.WriteString(`<title level="s">` + esc(*c.Series) + `</title>`)
	}
	b.WriteString(`<imprint>`)
	if c.Publisher != nil {
		b.WriteString(`<publisher>` + esc(*c.Publisher) + `</publisher>`)
	}
	if c.Scope != nil {
		if c.Scope.Volume != nil {
			b.WriteString(fmt.Sprintf(`<biblScope unit="volume">%d</biblScope>`, *c.Scope.Volume))
		}
		if c.Scope.Pages != nil {
			b.WriteString(fmt.Sprintf(`<biblScope unit="page" from="%d" to="%d"/>`, c.Scope.Pages.From, c.Scope.Pages.To))
		}
	}
	if c.Date != nil {
		when := c.Date.Year
		if c.Date.Month != nil {
			when += "-" + *c.Date.Month
			if c.Date.Day != nil {
				when += "-" + *c.Date.Day
			}
		}
		b.WriteString(`<date type="published"` + attr("when", when) + `/>`)
	}
	b.WriteString(`</imprint></monogr></biblStruct>`)
	return b.String()
}

func buildAuthors(authors []article.Author) string {
	var b strings.Builder
	for _, a := range authors {
		b.WriteString(`<author><persName>`)
		if a.PersonName.FirstName != nil {
			b.WriteString(`<forename type="first">` + esc(*a.PersonName.FirstName) + `</forename>`)
		}
		b.WriteString(`<surname>` + esc(a.PersonName.Surname) + `</surname>`)
		b.WriteString(`</persName>`)
		if a.Email != nil {
			b.WriteString(`<email>` + esc(*a.Email) + `</email>`)
		}
		for _, aff := range a.Affiliations {
			b.WriteString(`<affiliation>`)
			org := func(kind string, v *string) {
				if v != nil {
					b.WriteString(`<orgName` + attr("type", kind) + `>` + esc(*v) + `</orgName>`)
				}
			}
			org("department", aff.Department)
			org("institution", aff.Institution)
			org("laboratory", aff.Laboratory)
			b.WriteString(`</affiliation>`)
		}
		b.WriteString(`</author>`)
	}
	return b.String()
}

func buildSection(s article.Section) string {
	var b strings.Builder
	b.WriteString(`<div><head>` + esc(s.Title) + `</head>`)
	for _, p := range s.Paragraphs {
		b.WriteString(buildParagraph(p))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func buildParagraph(p article.RefText) string {
	var b strings.Builder
	b.WriteString(`<p>`)
	left := 0
	for _, ref := range p.Refs {
		b.WriteString(esc(p.Text[left:ref.Start]))
		b.WriteString(`<ref`)
		if ref.Marker != nil {
			b.WriteString(attr("type", string(*ref.Marker)))
		}
		if ref.Target != nil {
			b.WriteString(attr("target", *ref.Target))
		}
		b.WriteString(`>` + esc(p.Text[ref.Start:ref.End]) + `</ref>`)
		left = ref.End
	}
	b.WriteString(esc(p.Text[left:]))
	b.WriteString(`</p>`)
	return b.String()
}

func buildTable(t article.Table, id string) string {
	var b strings.Builder
	b.WriteString(`<figure type="table"`)
	if id != "" {
		b.WriteString(attr("xml:id", id))
	}
	b.WriteString(`><head>` + esc(t.Heading) + `</head>`)
	if t.Description != nil {
		b.WriteString(`<figDesc>` + esc(*t.Description) + `</figDesc>`)
	}
	b.WriteString(`<table>`)
	for _, row := range t.Rows {
		b.WriteString(`<row>`)
		for _, cell := range row {
			b.WriteString(`<cell>` + esc(cell) + `</cell>`)
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</table></figure>`)
	return b.String()
}

// mustNode parses an XML fragment and returns its document node.
func mustNode(xmlText string) Node {
	p, err := New([]byte(xmlText))
	if err != nil {
		panic(err)
	}
	return p.Root()
}
