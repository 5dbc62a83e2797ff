package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matsen/teiextract/internal/article"
)

func testArticle(title, doi string, keywords ...string) *article.Article {
	a := &article.Article{
		Bibliography: article.Citation{
			Title: title,
			Authors: []article.Author{
				{PersonName: article.PersonName{Surname: "Smith", FirstName: article.String("John")}},
			},
		},
		Keywords: article.NewKeywordSet(keywords...),
		Citations: map[string]article.Citation{
			"b0": {
				Title: "Cited paper",
				IDs:   &article.CitationIDs{DOI: article.String("10.1/cited")},
				Date:  &article.Date{Year: "1999"},
			},
			"b1": {Title: "Another"},
		},
		Sections: []article.Section{{
			Title:      "Introduction",
			Paragraphs: []article.RefText{{Text: "Body text."}},
		}},
		Tables: map[string]article.Table{},
		Abstract: &article.Section{
			Title:      "Abstract",
			Paragraphs: []article.RefText{{Text: "We study phylogenetic trees."}},
		},
	}
	if doi != "" {
		a.Bibliography.IDs = &article.CitationIDs{DOI: article.String(doi)}
	}
	return a
}

func testRecord(id, title, doi string, created int64, keywords ...string) Record {
	return Record{
		ID:        id,
		Source:    id + ".tei.xml",
		Pages:     12,
		CreatedAt: time.Unix(created, 0).UTC(),
		Article:   testArticle(title, doi, keywords...),
	}
}

// setupTestDB creates a test database with three records.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenDB(filepath.Join(t.TempDir(), "sub", "test.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	recs := []Record{
		testRecord("aaa", "Machine Learning in Biology", "10.1234/smith", 100, "Learning"),
		testRecord("bbb", "Deep Learning for Protein Structure", "", 200, "Proteins"),
		testRecord("ccc", "Statistical Methods in Genomics", "10.1234/brown", 300, "Genomics"),
	}
	for _, rec := range recs {
		if err := db.Put(rec); err != nil {
			t.Fatalf("Put(%s) error = %v", rec.ID, err)
		}
	}
	return db
}
