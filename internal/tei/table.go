package tei

import (
	"github.com/matsen/teiextract/internal/article"
)

// Table parses a <figure type="table">. A table needs a non-empty <head>;
// otherwise Table reports false. Rows are not checked for equal length.
func Table(n Node) (*article.Table, bool) {
	heading := n.Find("head").Text()
	if heading == "" {
		return nil, false
	}

	table := article.Table{Heading: heading}
	if desc := n.Find("figDesc"); desc.Valid() {
		table.Description = article.String(desc.Text())
	}
	for _, row := range n.FindAll("row") {
		var cells []string
		for _, cell := range row.FindAll("cell") {
			cells = append(cells, cell.Text())
		}
		table.Rows = append(table.Rows, cells)
	}
	return &table, true
}
