package tei

import (
	"errors"
	"fmt"
)

// Structural errors returned by Parse. Any of them means the input is not a
// GROBID extraction result at all; everything else is absorbed.
var (
	// ErrMissingBody indicates the document has no <body>.
	ErrMissingBody = errors.New("missing body")

	// ErrMissingSourceDescription indicates the document has no <sourceDesc>.
	ErrMissingSourceDescription = errors.New("missing source description")

	// ErrMissingBibliography indicates the <sourceDesc> has no <biblStruct>.
	ErrMissingBibliography = errors.New("missing bibliography")

	// ErrMissingCitations indicates the document has no <listBibl>.
	ErrMissingCitations = errors.New("missing citations")
)

// ErrIllFormed indicates the input is not well-formed XML.
var ErrIllFormed = errors.New("ill-formed XML")

// ParseError wraps a structural error with the name of the source being parsed.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parsing TEI %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("parsing TEI: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsStructural returns true if err is one of the structural parse errors.
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingBody) ||
		errors.Is(err, ErrMissingSourceDescription) ||
		errors.Is(err, ErrMissingBibliography) ||
		errors.Is(err, ErrMissingCitations)
}
