package tei

import (
	"strings"

	"github.com/matsen/teiextract/internal/article"
)

// ParseDate parses a naive ISO 8601 token ("2022", "2022-05", "2022-05-03").
// Empty tokens are dropped, so leading, trailing or doubled hyphens are
// tolerated; tokens beyond the day are ignored. Values are kept verbatim.
// It returns nil when no token remains.
func ParseDate(when string) *article.Date {
	var tokens []string
	for _, t := range strings.Split(when, "-") {
		if t != "" {
			tokens = append(tokens, t)
		}
	}

	switch len(tokens) {
	case 0:
		return nil
	case 1:
		return &article.Date{Year: tokens[0]}
	case 2:
		return &article.Date{Year: tokens[0], Month: article.String(tokens[1])}
	default:
		return &article.Date{
			Year:  tokens[0],
			Month: article.String(tokens[1]),
			Day:   article.String(tokens[2]),
		}
	}
}

// Date parses the "when" attribute of the first <date> below n.
func Date(n Node) *article.Date {
	when, ok := n.Find("date").Attr("when")
	if !ok {
		return nil
	}
	return ParseDate(when)
}
