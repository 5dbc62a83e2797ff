// Package extract turns TEI and PDF input into store records.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/matsen/teiextract/internal/grobid"
	"github.com/matsen/teiextract/internal/pdf"
	"github.com/matsen/teiextract/internal/storage"
	"github.com/matsen/teiextract/internal/tei"
)

// ErrNoGrobid is returned by PDF when no GROBID client is configured.
var ErrNoGrobid = errors.New("no GROBID client configured")

// Extractor parses TEI and, with a GROBID client, PDFs. It is safe for
// concurrent use.
type Extractor struct {
	client *grobid.Client
	form   func(grobid.File) grobid.Form
	logger *slog.Logger

	inspect func([]byte) (*pdf.Info, error)
	now     func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithGrobid enables PDF extraction. form builds the request options for
// each file; nil sends the file with GROBID's defaults.
func WithGrobid(client *grobid.Client, form func(grobid.File) grobid.Form) Option {
	return func(e *Extractor) {
		e.client = client
		e.form = form
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger:  slog.Default(),
		inspect: pdf.Inspect,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.form == nil {
		e.form = func(f grobid.File) grobid.Form { return grobid.Form{File: f} }
	}
	return e
}

// TEI parses TEI bytes into a record whose id is the content hash of data.
// Structural errors are returned as *tei.ParseError naming source.
func (e *Extractor) TEI(data []byte, source string) (*storage.Record, error) {
	a, err := tei.Parse(data,
		tei.WithSource(source),
		tei.WithLogger(e.logger.With("component", "tei")),
	)
	if err != nil {
		if !tei.IsStructural(err) {
			err = fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	return &storage.Record{
		ID:        storage.ContentID(data),
		Source:    source,
		CreatedAt: e.now().UTC(),
		Article:   a,
	}, nil
}

// Result is the outcome of a PDF extraction.
type Result struct {
	Record *storage.Record
	PDF    *pdf.Info
	TEI    []byte // GROBID's response body
}

// PDF inspects a PDF, sends it to GROBID and parses the returned TEI. The
// record id is the content hash of the PDF, so the same file maps to the
// same record whatever GROBID options were used.
func (e *Extractor) PDF(ctx context.Context, data []byte, source string) (*Result, error) {
	if e.client == nil {
		return nil, ErrNoGrobid
	}

	info, err := e.inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	e.logger.Debug("pdf preflight", "source", source, "pages", info.Pages, "doi", info.DOI)

	resp, err := e.client.ProcessFulltextDocument(ctx, e.form(grobid.File{
		Payload:  data,
		FileName: filepath.Base(source),
		MimeType: "application/pdf",
	}))
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", source, err)
	}

	rec, err := e.TEI(resp.Content, source)
	if err != nil {
		return nil, err
	}
	rec.ID = storage.ContentID(data)
	rec.PDFDOI = info.DOI
	rec.Pages = info.Pages
	return &Result{Record: rec, PDF: info, TEI: resp.Content}, nil
}
