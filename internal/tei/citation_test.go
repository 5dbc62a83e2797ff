package tei

import (
	"reflect"
	"testing"

	"github.com/matsen/teiextract/internal/article"
)

func TestCitation(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want article.Citation
	}{
		{
			name: "main title and journal",
			xml: `<biblStruct><analytic><title level="a" type="main">A Study</title></analytic>
				<monogr><title level="j">Nature</title><imprint><date when="2020"/></imprint></monogr></biblStruct>`,
			want: article.Citation{
				Title:   "A Study",
				Journal: article.String("Nature"),
				Date:    &article.Date{Year: "2020"},
			},
		},
		{
			name: "meeting title fallback",
			xml:  `<biblStruct><monogr><title level="m">Proceedings</title></monogr></biblStruct>`,
			want: article.Citation{Title: "Proceedings"},
		},
		{
			name: "journal equal to title dropped",
			xml:  `<biblStruct><monogr><title level="j" type="main">Same</title><title level="s">Same</title></monogr></biblStruct>`,
			want: article.Citation{Title: "Same"},
		},
		{
			name: "identifiers",
			xml:  `<biblStruct><idno type="DOI">10.1/x</idno><idno type="arXiv">2101.00001</idno><ptr target="http://x"/><publisher>P</publisher></biblStruct>`,
			want: article.Citation{
				IDs:       &article.CitationIDs{DOI: article.String("10.1/x"), ArXiv: article.String("2101.00001")},
				Target:    article.String("http://x"),
				Publisher: article.String("P"),
			},
		},
		{
			name: "empty identifiers omitted",
			xml:  `<biblStruct><idno type="DOI"></idno></biblStruct>`,
			want: article.Citation{},
		},
		{
			name: "scope",
			xml:  `<biblStruct><biblScope unit="volume">3</biblScope></biblStruct>`,
			want: article.Citation{Scope: &article.Scope{Volume: article.Int(3)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Citation(mustNode(tt.xml).Find("biblStruct"))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Citation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
