package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matsen/teiextract/internal/grobid"
	"github.com/matsen/teiextract/internal/pdf"
	"github.com/matsen/teiextract/internal/storage"
	"github.com/matsen/teiextract/internal/tei"
)

const sampleTEI = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
<teiHeader><fileDesc><sourceDesc><biblStruct><analytic>
<title level="a" type="main">Extracted Title</title>
</analytic></biblStruct></sourceDesc></fileDesc></teiHeader>
<text><body/><back><listBibl>
<biblStruct xml:id="b0"><analytic><title level="a" type="main">Cited</title></analytic></biblStruct>
</listBibl></back></text></TEI>`

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestExtractor(opts ...Option) *Extractor {
	e := New(opts...)
	e.now = func() time.Time { return fixedNow }
	e.inspect = func(data []byte) (*pdf.Info, error) {
		if !pdf.IsPDF(data) {
			return nil, pdf.ErrNotPDF
		}
		return &pdf.Info{Pages: 7, DOI: "10.1000/xyz"}, nil
	}
	return e
}

func fakeGrobid(t *testing.T, status int, body string) *grobid.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return grobid.NewClient(grobid.WithBaseURL(server.URL), grobid.WithRateLimit(0))
}

func TestTEI(t *testing.T) {
	e := newTestExtractor()

	rec, err := e.TEI([]byte(sampleTEI), "paper.tei.xml")
	if err != nil {
		t.Fatalf("TEI() error = %v", err)
	}
	if rec.ID != storage.ContentID([]byte(sampleTEI)) {
		t.Errorf("ID = %q, want content id", rec.ID)
	}
	if rec.Source != "paper.tei.xml" || !rec.CreatedAt.Equal(fixedNow) {
		t.Errorf("Source = %q, CreatedAt = %v", rec.Source, rec.CreatedAt)
	}
	if rec.Title() != "Extracted Title" || len(rec.Article.Citations) != 1 {
		t.Errorf("article = %+v", rec.Article)
	}
}

func TestTEIErrors(t *testing.T) {
	e := newTestExtractor()

	_, err := e.TEI([]byte(`<TEI><teiHeader/></TEI>`), "empty.xml")
	var perr *tei.ParseError
	if !errors.As(err, &perr) || perr.Source != "empty.xml" || !errors.Is(err, tei.ErrMissingBody) {
		t.Errorf("error = %v, want ParseError for empty.xml wrapping ErrMissingBody", err)
	}

	_, err = e.TEI([]byte(`<TEI>`), "broken.xml")
	if !errors.Is(err, tei.ErrIllFormed) {
		t.Errorf("error = %v, want ErrIllFormed", err)
	}
}

func TestPDF(t *testing.T) {
	var gotForm grobid.Form
	client := fakeGrobid(t, http.StatusOK, sampleTEI)
	consolidate := 1
	e := newTestExtractor(WithGrobid(client, func(f grobid.File) grobid.Form {
		gotForm = grobid.Form{File: f, ConsolidateCitations: &consolidate}
		return gotForm
	}))

	data := []byte("%PDF-1.4 fake")
	res, err := e.PDF(context.Background(), data, "dir/paper.pdf")
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}

	if gotForm.File.FileName != "paper.pdf" || gotForm.File.MimeType != "application/pdf" {
		t.Errorf("form file = %+v", gotForm.File)
	}
	if res.Record.ID != storage.ContentID(data) {
		t.Errorf("ID = %q, want hash of the PDF", res.Record.ID)
	}
	if res.Record.Pages != 7 || res.Record.PDFDOI != "10.1000/xyz" {
		t.Errorf("Pages = %d, PDFDOI = %q", res.Record.Pages, res.Record.PDFDOI)
	}
	if res.Record.Source != "dir/paper.pdf" || res.Record.Title() != "Extracted Title" {
		t.Errorf("record = %+v", res.Record)
	}
	if string(res.TEI) != sampleTEI {
		t.Errorf("TEI not returned")
	}
}

func TestPDFErrors(t *testing.T) {
	t.Run("no grobid", func(t *testing.T) {
		_, err := newTestExtractor().PDF(context.Background(), []byte("%PDF-1.4"), "a.pdf")
		if !errors.Is(err, ErrNoGrobid) {
			t.Errorf("error = %v, want ErrNoGrobid", err)
		}
	})

	t.Run("not a pdf", func(t *testing.T) {
		e := newTestExtractor(WithGrobid(fakeGrobid(t, http.StatusOK, sampleTEI), nil))
		_, err := e.PDF(context.Background(), []byte("hello"), "a.txt")
		if !errors.Is(err, pdf.ErrNotPDF) {
			t.Errorf("error = %v, want ErrNotPDF", err)
		}
	})

	t.Run("service unavailable", func(t *testing.T) {
		e := newTestExtractor(WithGrobid(fakeGrobid(t, http.StatusServiceUnavailable, ""), nil))
		_, err := e.PDF(context.Background(), []byte("%PDF-1.4"), "a.pdf")
		if !errors.Is(err, grobid.ErrServiceUnavailable) {
			t.Errorf("error = %v, want ErrServiceUnavailable", err)
		}
	})

	t.Run("not a GROBID document", func(t *testing.T) {
		e := newTestExtractor(WithGrobid(fakeGrobid(t, http.StatusOK, "<html/>"), nil))
		_, err := e.PDF(context.Background(), []byte("%PDF-1.4"), "a.pdf")
		if !tei.IsStructural(err) {
			t.Errorf("error = %v, want a structural error", err)
		}
	})
}
