package tei

import (
	"reflect"
	"testing"

	"github.com/matsen/teiextract/internal/article"
)

func TestTitle(t *testing.T) {
	root := mustNode(`<biblStruct><title level="j">Journal</title><title level="a" type="main">Main</title></biblStruct>`)

	if got := Title(root); got != "Journal" {
		t.Errorf("Title() = %q, want first title", got)
	}
	if got := Title(root, Attr{Key: "type", Value: "main"}); got != "Main" {
		t.Errorf("Title(main) = %q, want Main", got)
	}
	if got := Title(root, Attr{Key: "level", Value: "s"}); got != "" {
		t.Errorf("Title(level=s) = %q, want empty", got)
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want *string
	}{
		{name: "present", xml: `<x><ptr target="http://example.com"/></x>`, want: article.String("http://example.com")},
		{name: "empty kept", xml: `<x><ptr target=""/></x>`, want: article.String("")},
		{name: "no attribute", xml: `<x><ptr/></x>`},
		{name: "no ptr", xml: `<x/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Target(mustNode(tt.xml)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Target() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIDNoAndPublisher(t *testing.T) {
	root := mustNode(`<x><idno type="DOI">10.1/abc</idno><idno type="arXiv"></idno><publisher>ACM</publisher></x>`)

	if got := IDNo(root, Attr{Key: "type", Value: "DOI"}); got == nil || *got != "10.1/abc" {
		t.Errorf("IDNo(DOI) = %v, want 10.1/abc", got)
	}
	if got := IDNo(root, Attr{Key: "type", Value: "arXiv"}); got != nil {
		t.Errorf("IDNo(arXiv) = %q, want nil for empty text", *got)
	}
	if got := IDNo(root, Attr{Key: "type", Value: "PMID"}); got != nil {
		t.Errorf("IDNo(PMID) = %q, want nil", *got)
	}
	if got := Publisher(root); got == nil || *got != "ACM" {
		t.Errorf("Publisher() = %v, want ACM", got)
	}
	if got := Publisher(mustNode(`<x><publisher/></x>`)); got != nil {
		t.Errorf("Publisher() = %q, want nil", *got)
	}
}

func TestKeywords(t *testing.T) {
	root := mustNode(`<keywords><term>keywords</term><term>21 Tags</term><term>123</term><term>Tags</term></keywords>`)
	got := Keywords(root)
	want := []string{"Keywords", "Tags"}
	if !reflect.DeepEqual(got.Sorted(), want) {
		t.Errorf("Keywords() = %v, want %v", got.Sorted(), want)
	}

	empty := Keywords(Node{})
	if empty == nil || len(empty) != 0 {
		t.Errorf("Keywords(missing) = %v, want empty non-nil set", empty)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		when string
		want *article.Date
	}{
		{when: "2022", want: &article.Date{Year: "2022"}},
		{when: "2022-05", want: &article.Date{Year: "2022", Month: article.String("05")}},
		{when: "2022-05-03", want: &article.Date{Year: "2022", Month: article.String("05"), Day: article.String("03")}},
		{when: "2022-05-03-99", want: &article.Date{Year: "2022", Month: article.String("05"), Day: article.String("03")}},
		{when: "-2022--05-", want: &article.Date{Year: "2022", Month: article.String("05")}},
		{when: "", want: nil},
		{when: "--", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.when, func(t *testing.T) {
			if got := ParseDate(tt.when); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tt.when, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	if got := Date(mustNode(`<x><date type="published" when="2021-02"/></x>`)); got == nil || got.Year != "2021" {
		t.Errorf("Date() = %+v, want year 2021", got)
	}
	if got := Date(mustNode(`<x><date>2021</date></x>`)); got != nil {
		t.Errorf("Date() = %+v, want nil without when", got)
	}
	if got := Date(mustNode(`<x/>`)); got != nil {
		t.Errorf("Date() = %+v, want nil", got)
	}
}

func TestScope(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want *article.Scope
	}{
		{
			name: "volume and page range",
			xml:  `<x><biblScope unit="volume">12</biblScope><biblScope unit="page" from="3" to="7"/></x>`,
			want: &article.Scope{Volume: article.Int(12), Pages: &article.PageRange{From: 3, To: 7}},
		},
		{
			name: "single page from text",
			xml:  `<x><biblScope unit="page">42</biblScope></x>`,
			want: &article.Scope{Pages: &article.PageRange{From: 42, To: 42}},
		},
		{
			name: "only from falls back to text",
			xml:  `<x><biblScope unit="page" from="3">5</biblScope></x>`,
			want: &article.Scope{Pages: &article.PageRange{From: 5, To: 5}},
		},
		{
			name: "non-integer values skipped",
			xml:  `<x><biblScope unit="volume">XII</biblScope><biblScope unit="page" from="a" to="b"/></x>`,
		},
		{
			name: "non-integer page text skipped",
			xml:  `<x><biblScope unit="page">iv</biblScope></x>`,
		},
		{
			name: "page without attributes or text",
			xml:  `<x><biblScope unit="page"/></x>`,
		},
		{
			name: "bad page keeps volume",
			xml:  `<x><biblScope unit="page">iv</biblScope><biblScope unit="volume">3</biblScope></x>`,
			want: &article.Scope{Volume: article.Int(3)},
		},
		{
			name: "unknown and missing units ignored",
			xml:  `<x><biblScope unit="issue">2</biblScope><biblScope>4</biblScope></x>`,
		},
		{
			name: "last one wins",
			xml:  `<x><biblScope unit="volume">1</biblScope><biblScope unit="volume">2</biblScope></x>`,
			want: &article.Scope{Volume: article.Int(2)},
		},
		{
			name: "empty",
			xml:  `<x/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scope(mustNode(tt.xml)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scope() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
