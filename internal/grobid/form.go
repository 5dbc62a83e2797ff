package grobid

import (
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// File is the PDF sent as the "input" field.
type File struct {
	Payload  []byte
	FileName string
	MimeType string
}

// Form is the multipart form accepted by processFulltextDocument.
// Nil fields are not sent and GROBID applies its own defaults.
type Form struct {
	File File

	SegmentSentences       *bool
	ConsolidateHeader      *int
	ConsolidateCitations   *int
	IncludeRawCitations    *bool
	IncludeRawAffiliations *bool
	TEICoordinates         []string
}

// Write encodes the form. Consolidation levels other than 0, 1 and 2 are
// not sent. segmentSentences is only sent when true.
func (f Form) Write(w *multipart.Writer) error {
	if len(f.File.Payload) == 0 {
		return ErrMissingInput
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="input"; filename=%q`, f.fileName()))
	if f.File.MimeType != "" {
		header.Set("Content-Type", f.File.MimeType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating input part: %w", err)
	}
	if _, err := part.Write(f.File.Payload); err != nil {
		return fmt.Errorf("writing input part: %w", err)
	}

	fields := f.fields()
	for _, kv := range fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return fmt.Errorf("writing field %s: %w", kv[0], err)
		}
	}
	return nil
}

func (f Form) fileName() string {
	if f.File.FileName == "" {
		return "input.pdf"
	}
	return f.File.FileName
}

// fields returns the non-file form fields in a stable order.
func (f Form) fields() [][2]string {
	var fields [][2]string
	if f.SegmentSentences != nil && *f.SegmentSentences {
		fields = append(fields, [2]string{"segmentSentences", "1"})
	}
	if level, ok := consolidation(f.ConsolidateHeader); ok {
		fields = append(fields, [2]string{"consolidateHeader", level})
	}
	if level, ok := consolidation(f.ConsolidateCitations); ok {
		fields = append(fields, [2]string{"consolidateCitations", level})
	}
	if f.IncludeRawCitations != nil {
		fields = append(fields, [2]string{"includeRawCitations", flag(*f.IncludeRawCitations)})
	}
	if f.IncludeRawAffiliations != nil {
		fields = append(fields, [2]string{"includeRawAffiliations", flag(*f.IncludeRawAffiliations)})
	}
	for _, c := range f.TEICoordinates {
		fields = append(fields, [2]string{"teiCoordinates", c})
	}
	return fields
}

func consolidation(level *int) (string, bool) {
	if level == nil || *level < 0 || *level > 2 {
		return "", false
	}
	return strconv.Itoa(*level), true
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
