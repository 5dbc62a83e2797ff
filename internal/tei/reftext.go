package tei

import (
	"github.com/beevik/etree"

	"github.com/matsen/teiextract/internal/article"
)

// markerTag is the element that embeds a cross-reference in running text.
const markerTag = "ref"

type tokenKind int

const (
	literalText tokenKind = iota
	markerElement
)

// token is one step of a document-order walk: either a run of character
// data or the opening of a marker element.
type token struct {
	kind tokenKind
	text string
	el   *etree.Element
}

// tokens flattens the subtree below n depth-first. Marker elements are
// reported before their content, and their content is still visited, so the
// text of a marker appears exactly once among the literal tokens.
func (n Node) tokens() []token {
	if n.el == nil {
		return nil
	}

	var out []token
	stack := pushReversed(nil, n.el.Child)
	for len(stack) > 0 {
		tok := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := tok.(type) {
		case *etree.CharData:
			out = append(out, token{kind: literalText, text: t.Data})
		case *etree.Element:
			if t.Tag == markerTag {
				out = append(out, token{kind: markerElement, el: t})
			}
			stack = pushReversed(stack, t.Child)
		}
	}
	return out
}

func pushReversed(stack, children []etree.Token) []etree.Token {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	return stack
}

// RefText flattens a paragraph into its text and the spans of its <ref>
// elements. Offsets are byte offsets into the returned text.
func RefText(n Node) article.RefText {
	var rt article.RefText
	var text []byte

	for _, tok := range n.tokens() {
		switch tok.kind {
		case literalText:
			text = append(text, tok.text...)
		case markerElement:
			marker := NewNode(tok.el)
			start := len(text)
			ref := article.Ref{
				Start: start,
				End:   start + len(marker.Text()),
			}
			if v, ok := marker.Attr("type"); ok {
				if m, ok := article.ParseMarker(v); ok {
					ref.Marker = article.MarkerOf(m)
				}
			}
			if v, ok := marker.Attr("target"); ok {
				ref.Target = article.String(v)
			}
			rt.Refs = append(rt.Refs, ref)
		}
	}

	rt.Text = string(text)
	return rt
}
