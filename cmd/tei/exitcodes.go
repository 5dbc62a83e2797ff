package main

import (
	"errors"

	"github.com/matsen/teiextract/internal/grobid"
	"github.com/matsen/teiextract/internal/pdf"
	"github.com/matsen/teiextract/internal/tei"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (invalid config file or environment)
	ExitDataError   = 3 // Data error (ill-formed XML, not a GROBID document, not a PDF)
	ExitGrobidError = 4 // GROBID error (network, documented error status)
	ExitNotFound    = 5 // Article not found in the store
)

// exitCodeFor maps an error from parsing or processing to an exit code.
func exitCodeFor(err error) int {
	var apiErr *grobid.APIError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, grobid.ErrNetworkError), errors.As(err, &apiErr):
		return ExitGrobidError
	case tei.IsStructural(err), errors.Is(err, pdf.ErrNotPDF), errors.Is(err, tei.ErrIllFormed):
		return ExitDataError
	default:
		return ExitError
	}
}
