package export

import (
	"strings"
	"testing"

	"github.com/matsen/teiextract/internal/article"
)

func testCitation() article.Citation {
	return article.Citation{
		Title: "Evolutionary trees from DNA sequences",
		Authors: []article.Author{
			{PersonName: article.PersonName{Surname: "Felsenstein", FirstName: article.String("Joseph")}},
			{PersonName: article.PersonName{Surname: "Doe"}},
		},
		Date:    &article.Date{Year: "1981", Month: article.String("11")},
		IDs:     &article.CitationIDs{DOI: article.String("10.1007/BF01734359")},
		Journal: article.String("J Mol Evol"),
		Scope:   &article.Scope{Volume: article.Int(17), Pages: &article.PageRange{From: 368, To: 376}},
	}
}

func TestCitationToBibTeX_BasicArticle(t *testing.T) {
	got := CitationToBibTeX("Felsenstein1981", testCitation())

	want := `@article{Felsenstein1981,
  author = {Felsenstein, Joseph and Doe},
  title = {Evolutionary trees from DNA sequences},
  journal = {J Mol Evol},
  volume = {17},
  pages = {368--376},
  year = {1981},
  month = {11},
  doi = {10.1007/BF01734359},
}
`
	if got != want {
		t.Errorf("CitationToBibTeX() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCitationToBibTeX_Inproceedings(t *testing.T) {
	c := article.Citation{
		Title:   "A Conference Paper",
		Authors: []article.Author{{PersonName: article.PersonName{Surname: "Brown"}}},
		Series:  article.String("Lecture Notes in Computer Science"),
		Journal: article.String("Proceedings of ICML"),
	}

	got := CitationToBibTeX("Brown", c)
	if !strings.HasPrefix(got, "@inproceedings{Brown,") {
		t.Errorf("should be @inproceedings, got:\n%s", got)
	}
	if !strings.Contains(got, "booktitle = {Lecture Notes in Computer Science}") {
		t.Errorf("should use series as booktitle, got:\n%s", got)
	}
	if strings.Contains(got, "journal =") {
		t.Errorf("inproceedings should not carry journal, got:\n%s", got)
	}
}

func TestCitationToBibTeX_OptionalFields(t *testing.T) {
	c := article.Citation{
		Title:     "Preprint",
		IDs:       &article.CitationIDs{ArXiv: article.String("2101.00001")},
		Target:    article.String("https://arxiv.org/abs/2101.00001"),
		Publisher: article.String("Self"),
		Scope:     &article.Scope{Pages: &article.PageRange{From: 5, To: 5}},
	}
	got := CitationToBibTeX("p", c)

	for _, want := range []string{
		"eprint = {2101.00001}",
		"archiveprefix = {arXiv}",
		"url = {https://arxiv.org/abs/2101.00001}",
		"publisher = {Self}",
		"pages = {5}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	for _, absent := range []string{"author =", "year =", "doi =", "journal ="} {
		if strings.Contains(got, absent) {
			t.Errorf("unexpected %q in:\n%s", absent, got)
		}
	}
}

func TestDetermineEntryType(t *testing.T) {
	tests := []struct {
		name string
		c    article.Citation
		want string
	}{
		{name: "journal", c: article.Citation{Journal: article.String("Nature")}, want: "article"},
		{name: "conference", c: article.Citation{Journal: article.String("Conference on Learning")}, want: "inproceedings"},
		{name: "workshop", c: article.Citation{Journal: article.String("ICML Workshop")}, want: "inproceedings"},
		{name: "preprint", c: article.Citation{Journal: article.String("bioRxiv")}, want: "article"},
		{name: "series", c: article.Citation{Series: article.String("LNCS")}, want: "inproceedings"},
		{name: "nothing", c: article.Citation{}, want: "article"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineEntryType(tt.c); got != tt.want {
				t.Errorf("determineEntryType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "A & B", want: `A \& B`},
		{in: "50% of $x_1$", want: `50\% of \$x\_1\$`},
		{in: "{#}", want: `\{\#\}`},
		{in: "a~b^c", want: `a\textasciitilde{}b\textasciicircum{}c`},
		{in: `a\b`, want: `a\textbackslash{}b`},
	}
	for _, tt := range tests {
		if got := escapeLatex(tt.in); got != tt.want {
			t.Errorf("escapeLatex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCitationKey(t *testing.T) {
	tests := []struct {
		name string
		c    article.Citation
		want string
	}{
		{name: "full", c: testCitation(), want: "Felsenstein1981evolutionary"},
		{
			name: "skips short words",
			c: article.Citation{
				Title:   "A New Way",
				Authors: []article.Author{{PersonName: article.PersonName{Surname: "O'Neil"}}},
			},
			want: "ONeil",
		},
		{name: "no authors", c: article.Citation{Title: "Anything"}, want: "fallback"},
		{
			name: "non-ascii surname",
			c:    article.Citation{Authors: []article.Author{{PersonName: article.PersonName{Surname: "Ñ"}}}},
			want: "fallback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationKey(tt.c, "fallback"); got != tt.want {
				t.Errorf("CitationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArticleToBibTeX(t *testing.T) {
	dup := testCitation()
	a := &article.Article{
		Bibliography: article.Citation{Title: "Our Paper"},
		Citations: map[string]article.Citation{
			"b1": dup,
			"b0": testCitation(),
			"b2": {Title: "Anonymous"},
		},
	}

	entries := FromArticle("abc", a)
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	want := []string{"abc", "Felsenstein1981evolutionary", "Felsenstein1981evolutionarya", "abc-b2"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	text := ArticleToBibTeX("abc", a)
	if strings.Count(text, "@article{") != 4 {
		t.Errorf("ArticleToBibTeX() should hold 4 entries, got:\n%s", text)
	}
	if !strings.Contains(text, "}\n\n@article{") {
		t.Errorf("entries should be separated by a blank line, got:\n%s", text)
	}
}

func articleWithCitation() *article.Article {
	return &article.Article{
		Bibliography: article.Citation{Title: "Our Paper"},
		Citations:    map[string]article.Citation{"b0": testCitation()},
	}
}
