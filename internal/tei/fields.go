package tei

import (
	"github.com/matsen/teiextract/internal/article"
)

// Title returns the text of the first matching <title>, or "" when there
// is none.
func Title(n Node, filters ...Attr) string {
	return n.Find("title", filters...).Text()
}

// Target returns the target of the first <ptr> below n.
func Target(n Node) *string {
	target, ok := n.Find("ptr").Attr("target")
	if !ok {
		return nil
	}
	return article.String(target)
}

// IDNo returns the text of the first matching <idno>. Empty text counts as
// absent.
func IDNo(n Node, filters ...Attr) *string {
	return nonEmpty(n.Find("idno", filters...).Text())
}

// Publisher returns the text of the first <publisher>. Empty text counts as
// absent.
func Publisher(n Node) *string {
	return nonEmpty(n.Find("publisher").Text())
}

// Keywords collects every <term> below n, cleaned with CleanTitle.
// Terms that clean to nothing are dropped.
func Keywords(n Node) article.KeywordSet {
	keywords := article.NewKeywordSet()
	for _, term := range n.FindAll("term") {
		if kw := CleanTitle(term.Text()); kw != "" {
			keywords.Add(kw)
		}
	}
	return keywords
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return article.String(s)
}
