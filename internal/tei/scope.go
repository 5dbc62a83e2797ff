package tei

import (
	"strconv"
	"strings"

	"github.com/matsen/teiextract/internal/article"
)

// scopeUnit is the closed set of biblScope units the parser understands.
type scopeUnit string

const (
	unitPage   scopeUnit = "page"
	unitVolume scopeUnit = "volume"
)

// Scope collects every <biblScope> below n. A page scope uses its from/to
// attributes when both are present, otherwise its text as a single page.
// Values that are not integers are skipped. When a unit appears more than
// once the last one wins. It returns nil when nothing was set.
func Scope(n Node) *article.Scope {
	var scope article.Scope
	for _, tag := range n.FindAll("biblScope") {
		unit, _ := tag.Attr("unit")
		switch scopeUnit(unit) {
		case unitPage:
			if pages, ok := pageRange(tag); ok {
				scope.Pages = &pages
			}
		case unitVolume:
			if v, err := parseInt(tag.Text()); err == nil {
				scope.Volume = article.Int(v)
			}
		}
	}

	if scope.IsEmpty() {
		return nil
	}
	return &scope
}

func pageRange(tag Node) (article.PageRange, bool) {
	from, hasFrom := tag.Attr("from")
	to, hasTo := tag.Attr("to")
	if hasFrom && hasTo {
		f, err := parseInt(from)
		if err != nil {
			return article.PageRange{}, false
		}
		t, err := parseInt(to)
		if err != nil {
			return article.PageRange{}, false
		}
		return article.PageRange{From: f, To: t}, true
	}

	text := tag.Text()
	if text == "" {
		return article.PageRange{}, false
	}
	page, err := parseInt(text)
	if err != nil {
		return article.PageRange{}, false
	}
	return article.PageRange{From: page, To: page}, true
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
