// Package article defines the scholarly article model extracted from TEI documents.
package article

// Article represents a parsed scholarly article.
type Article struct {
	Bibliography Citation            `json:"bibliography"`
	Keywords     KeywordSet          `json:"keywords"`
	Citations    map[string]Citation `json:"citations"`
	Sections     []Section           `json:"sections"`
	Tables       map[string]Table    `json:"tables"`
	Abstract     *Section            `json:"abstract,omitempty"`
}

// Table represents a <figure type="table"> element.
type Table struct {
	Heading     string     `json:"heading"`
	Description *string    `json:"description,omitempty"`
	Rows        [][]string `json:"rows,omitempty"`
}

// Citation looks up a citation by the target of a reference ("#b0" or "b0").
func (a *Article) Citation(target string) (Citation, bool) {
	c, ok := a.Citations[trimAnchor(target)]
	return c, ok
}

// Table looks up a table by the target of a reference ("#tab_0" or "tab_0").
func (a *Article) Table(target string) (Table, bool) {
	t, ok := a.Tables[trimAnchor(target)]
	return t, ok
}

func trimAnchor(target string) string {
	if len(target) > 0 && target[0] == '#' {
		return target[1:]
	}
	return target
}

// String returns a pointer to s. It keeps optional string literals short.
func String(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}
