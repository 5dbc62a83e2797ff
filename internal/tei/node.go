package tei

import (
	"strings"

	"github.com/beevik/etree"
)

// Attr is an attribute equality filter used when searching for elements.
// Key may carry a namespace prefix ("xml:id"); without one it matches the
// attribute in any namespace.
type Attr struct {
	Key   string
	Value string
}

// Node is a read-only view over an element of a parsed TEI tree.
// The zero Node is "not found": it has no text, no attributes and no
// descendants, so lookups can be chained without nil checks.
type Node struct {
	el *etree.Element
}

// NewNode wraps an etree element. A nil element yields the zero Node.
func NewNode(el *etree.Element) Node {
	return Node{el: el}
}

// Valid reports whether the node refers to an element.
func (n Node) Valid() bool {
	return n.el != nil
}

// Tag returns the local name of the element.
func (n Node) Tag() string {
	if n.el == nil {
		return ""
	}
	return n.el.Tag
}

// Attr returns the value of an attribute and whether it is present.
func (n Node) Attr(key string) (string, bool) {
	if n.el == nil {
		return "", false
	}
	space, local := splitKey(key)
	for _, a := range n.el.Attr {
		if a.Key == local && (space == "" || a.Space == space) {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first descendant (in document order) with the given tag
// whose attributes match every filter.
func (n Node) Find(tag string, filters ...Attr) Node {
	var found Node
	n.walkElements(func(el *etree.Element) bool {
		if matches(el, tag, filters) {
			found = Node{el: el}
			return false
		}
		return true
	})
	return found
}

// FindAll returns every matching descendant in document order.
func (n Node) FindAll(tag string, filters ...Attr) []Node {
	var nodes []Node
	n.walkElements(func(el *etree.Element) bool {
		if matches(el, tag, filters) {
			nodes = append(nodes, Node{el: el})
		}
		return true
	})
	return nodes
}

// Text returns the concatenated character data of the element and all of
// its descendants in document order. A missing node yields "".
func (n Node) Text() string {
	if n.el == nil {
		return ""
	}
	var b strings.Builder
	for _, tok := range n.tokens() {
		if tok.kind == literalText {
			b.WriteString(tok.text)
		}
	}
	return b.String()
}

// walkElements visits descendants depth-first, excluding n itself.
// Returning false from visit stops the walk.
func (n Node) walkElements(visit func(*etree.Element) bool) {
	if n.el == nil {
		return
	}
	var walk func(el *etree.Element) bool
	walk = func(el *etree.Element) bool {
		for _, child := range el.ChildElements() {
			if !visit(child) || !walk(child) {
				return false
			}
		}
		return true
	}
	walk(n.el)
}

func matches(el *etree.Element, tag string, filters []Attr) bool {
	if el.Tag != tag {
		return false
	}
	n := Node{el: el}
	for _, f := range filters {
		if v, ok := n.Attr(f.Key); !ok || v != f.Value {
			return false
		}
	}
	return true
}

func splitKey(key string) (space, local string) {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}
