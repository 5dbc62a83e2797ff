package storage

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/matsen/teiextract/internal/article"
)

// idBytes is the length of the BLAKE2b-256 prefix used as content id.
const idBytes = 12

// Record is a stored extraction result.
type Record struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`            // File the TEI came from
	PDFDOI    string           `json:"pdf_doi,omitempty"` // DOI found in the PDF text, if any
	Pages     int              `json:"pages,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Article   *article.Article `json:"article"`
}

// Title returns the article title, or "" without an article.
func (r *Record) Title() string {
	if r.Article == nil {
		return ""
	}
	return r.Article.Bibliography.Title
}

// DOI returns the DOI GROBID extracted for the article itself.
func (r *Record) DOI() string {
	if r.Article == nil || r.Article.Bibliography.IDs == nil || r.Article.Bibliography.IDs.DOI == nil {
		return ""
	}
	return *r.Article.Bibliography.IDs.DOI
}

// Authors returns the authors of the article itself. The value receiver lets
// storage.Record.Authors be passed as a func(Record) []article.Author.
func (r Record) Authors() []article.Author {
	if r.Article == nil {
		return nil
	}
	return r.Article.Bibliography.Authors
}

// Summary is the short form of a record used in listings.
type Summary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	DOI       string   `json:"doi,omitempty"`
	Citations int      `json:"citations"`
	Source    string   `json:"source"`
}

// Summary returns the listing form of r. Without a DOI from GROBID, the DOI
// found in the PDF is used.
func (r *Record) Summary() Summary {
	s := Summary{
		ID:     r.ID,
		Title:  r.Title(),
		DOI:    r.DOI(),
		Source: r.Source,
	}
	if r.Article != nil {
		for _, a := range r.Article.Bibliography.Authors {
			s.Authors = append(s.Authors, a.PersonName.String())
		}
		s.Citations = len(r.Article.Citations)
	}
	if s.DOI == "" {
		s.DOI = r.PDFDOI
	}
	return s
}

// Summaries returns the listing form of each record.
func Summaries(recs []Record) []Summary {
	out := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Summary())
	}
	return out
}

// CitationRow is a flattened bibliography entry of a stored article.
type CitationRow struct {
	ArticleID string `json:"article_id"`
	Key       string `json:"key"`
	Title     string `json:"title"`
	DOI       string `json:"doi,omitempty"`
	Year      string `json:"year,omitempty"`
}

// ContentID derives a stable id from the bytes of the source document, so
// re-importing the same file replaces the earlier record.
func ContentID(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:idBytes])
}
