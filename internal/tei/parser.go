// Package tei extracts the article model from GROBID TEI XML.
//
// Example:
//
//	p, err := tei.New(xmlBytes)
//	if err != nil {
//		return err
//	}
//	a, err := p.Parse()
//
// Parsing is strict about the four elements that make a document a GROBID
// result (body, sourceDesc, its biblStruct, listBibl) and lenient about
// everything else: malformed optional fields are dropped.
package tei

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/matsen/teiextract/internal/article"
)

// AbstractTitle is the section title used for an abstract without <head>.
const AbstractTitle = "Abstract"

// Parser holds a parsed TEI tree. It is read-only once built, so Parse may
// be called any number of times.
type Parser struct {
	root   Node
	source string
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used to report skipped elements.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// WithSource names the input in errors and log records (e.g. a file path).
func WithSource(name string) Option {
	return func(p *Parser) {
		p.source = name
	}
}

// New builds a Parser from TEI XML bytes. It fails only when the XML is
// not well-formed.
func New(stream []byte, opts ...Option) (*Parser, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(stream); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllFormed, err)
	}

	p := &Parser{
		root:   NewNode(&doc.Element),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Root returns the document node.
func (p *Parser) Root() Node {
	return p.root
}

// Parse assembles the Article. It returns a *ParseError wrapping one of the
// structural errors when a required element is missing.
func (p *Parser) Parse() (*article.Article, error) {
	body := p.root.Find("body")
	if !body.Valid() {
		return nil, p.fail(ErrMissingBody)
	}

	abstract, _ := Section(p.root.Find("abstract"), AbstractTitle)

	var sections []article.Section
	for _, div := range body.FindAll("div") {
		if section, ok := Section(div, ""); ok {
			sections = append(sections, *section)
		}
	}

	tables := make(map[string]article.Table)
	for _, figure := range body.FindAll("figure", Attr{Key: "type", Value: "table"}) {
		id, ok := figure.Attr("xml:id")
		if !ok {
			continue
		}
		if table, ok := Table(figure); ok {
			tables[id] = *table
		} else {
			p.logger.Debug("skipping table without heading", "source", p.source, "id", id)
		}
	}

	source := p.root.Find("sourceDesc")
	if !source.Valid() {
		return nil, p.fail(ErrMissingSourceDescription)
	}
	biblStruct := source.Find("biblStruct")
	if !biblStruct.Valid() {
		return nil, p.fail(ErrMissingBibliography)
	}
	bibliography := Citation(biblStruct)

	keywords := Keywords(p.root.Find("keywords"))

	listBibl := p.root.Find("listBibl")
	if !listBibl.Valid() {
		return nil, p.fail(ErrMissingCitations)
	}
	citations := make(map[string]article.Citation)
	for _, s := range listBibl.FindAll("biblStruct") {
		id, ok := s.Attr("xml:id")
		if !ok {
			p.logger.Debug("skipping citation without xml:id", "source", p.source)
			continue
		}
		if _, dup := citations[id]; dup {
			p.logger.Debug("duplicate citation id, keeping the last", "source", p.source, "id", id)
		}
		citations[id] = Citation(s)
	}

	return &article.Article{
		Bibliography: bibliography,
		Keywords:     keywords,
		Citations:    citations,
		Sections:     sections,
		Tables:       tables,
		Abstract:     abstract,
	}, nil
}

func (p *Parser) fail(err error) error {
	return &ParseError{Source: p.source, Err: err}
}

// Parse is a shorthand for New followed by Parser.Parse.
func Parse(stream []byte, opts ...Option) (*article.Article, error) {
	p, err := New(stream, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
