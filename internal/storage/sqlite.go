package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/teiextract/internal/article"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectArticleFields contains the standard field list for SELECT queries.
const selectArticleFields = `id, source, pdf_doi, pages, created_at, article_json`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			doi TEXT,
			pdf_doi TEXT,
			pages INTEGER,
			article_json TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_articles_doi ON articles(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Bibliography entries, one row per listBibl key
		CREATE TABLE IF NOT EXISTS citations (
			article_id TEXT NOT NULL,
			key TEXT NOT NULL,
			title TEXT NOT NULL,
			doi TEXT,
			year TEXT,
			PRIMARY KEY (article_id, key)
		);

		CREATE INDEX IF NOT EXISTS idx_citations_doi ON citations(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
			id,
			title,
			abstract,
			keywords,
			authors_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Put inserts or replaces a record together with its citations and
// search entry.
func (d *DB) Put(rec Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := putRecord(tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

func putRecord(tx *sql.Tx, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no id")
	}
	if rec.Article == nil {
		return fmt.Errorf("record %s has no article", rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	articleJSON, err := json.Marshal(rec.Article)
	if err != nil {
		return fmt.Errorf("marshaling article %s: %w", rec.ID, err)
	}

	if err := deleteArticle(tx, rec.ID); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO articles (id, source, title, doi, pdf_doi, pages, article_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Title(), nullableStringValue(rec.DOI()),
		nullableStringValue(rec.PDFDOI), rec.Pages, string(articleJSON), rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting article %s: %w", rec.ID, err)
	}

	citationStmt, err := tx.Prepare(`
		INSERT INTO citations (article_id, key, title, doi, year)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing citation insert: %w", err)
	}
	defer citationStmt.Close()

	for _, row := range citationRows(rec.ID, rec.Article) {
		if _, err := citationStmt.Exec(row.ArticleID, row.Key, row.Title,
			nullableStringValue(row.DOI), nullableStringValue(row.Year)); err != nil {
			return fmt.Errorf("inserting citation %s/%s: %w", rec.ID, row.Key, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO articles_fts (id, title, abstract, keywords, authors_text)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Title(), abstractText(rec.Article),
		strings.Join(rec.Article.Keywords.Sorted(), ", "),
		formatAuthorsText(rec.Article.Bibliography.Authors),
	)
	if err != nil {
		return fmt.Errorf("inserting fts for %s: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a record. Deleting a missing id is not an error.
func (d *DB) Delete(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteArticle(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteArticle(tx *sql.Tx, id string) error {
	for _, table := range []string{"articles", "articles_fts"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE id = ?", id); err != nil {
			return fmt.Errorf("clearing %s for %s: %w", table, id, err)
		}
	}
	if _, err := tx.Exec("DELETE FROM citations WHERE article_id = ?", id); err != nil {
		return fmt.Errorf("clearing citations for %s: %w", id, err)
	}
	return nil
}

func citationRows(id string, a *article.Article) []CitationRow {
	keys := make([]string, 0, len(a.Citations))
	for k := range a.Citations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]CitationRow, 0, len(keys))
	for _, k := range keys {
		c := a.Citations[k]
		row := CitationRow{ArticleID: id, Key: k, Title: c.Title}
		if c.IDs != nil && c.IDs.DOI != nil {
			row.DOI = *c.IDs.DOI
		}
		if c.Date != nil {
			row.Year = c.Date.Year
		}
		rows = append(rows, row)
	}
	return rows
}

func abstractText(a *article.Article) string {
	if a.Abstract == nil {
		return ""
	}
	return a.Abstract.Text()
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []article.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.PersonName.String())
	}
	return strings.Join(names, ", ")
}

// Get retrieves a record by its ID. Returns nil, nil when it does not exist.
func (d *DB) Get(id string) (*Record, error) {
	row := d.db.QueryRow(`SELECT `+selectArticleFields+` FROM articles WHERE id = ?`, id)
	return scanRecord(row)
}

// GetByDOI retrieves the first record whose article has the given DOI.
func (d *DB) GetByDOI(doi string) (*Record, error) {
	row := d.db.QueryRow(`SELECT `+selectArticleFields+` FROM articles WHERE doi = ? OR pdf_doi = ? ORDER BY id LIMIT 1`, doi, doi)
	return scanRecord(row)
}

// List returns all records ordered by creation time, optionally limited.
func (d *DB) List(limit int) ([]Record, error) {
	query := `SELECT ` + selectArticleFields + ` FROM articles ORDER BY created_at, id`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Search performs a full-text search over titles, abstracts, keywords and
// authors. A non-positive limit returns every match.
func (d *DB) Search(query string, limit int) ([]Record, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	rows, err := d.db.Query(`
		SELECT `+selectArticleFields+`
		FROM articles
		WHERE id IN (SELECT id FROM articles_fts WHERE articles_fts MATCH ?)
		ORDER BY id
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Citations returns the bibliography rows of an article ordered by key.
func (d *DB) Citations(articleID string) ([]CitationRow, error) {
	rows, err := d.db.Query(`
		SELECT article_id, key, title, doi, year
		FROM citations WHERE article_id = ? ORDER BY key`, articleID)
	if err != nil {
		return nil, fmt.Errorf("listing citations: %w", err)
	}
	defer rows.Close()

	var out []CitationRow
	for rows.Next() {
		var row CitationRow
		var doi, year sql.NullString
		if err := rows.Scan(&row.ArticleID, &row.Key, &row.Title, &doi, &year); err != nil {
			return nil, err
		}
		row.DOI = doi.String
		row.Year = year.String
		out = append(out, row)
	}
	return out, rows.Err()
}

// CitedBy returns the ids of stored articles that cite the given DOI.
func (d *DB) CitedBy(doi string) ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT article_id FROM citations WHERE doi = ? ORDER BY article_id`, doi)
	if err != nil {
		return nil, fmt.Errorf("finding citing articles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the total number of articles.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
// It runs in one transaction: on any error the store is left unchanged.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	recs, err := ReadJSONL(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"articles", "citations", "articles_fts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	for _, rec := range recs {
		if err := putRecord(tx, rec); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(recs), nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var pdfDOI sql.NullString
	var pages sql.NullInt64
	var createdAt int64
	var articleJSON string

	err := s.Scan(&rec.ID, &rec.Source, &pdfDOI, &pages, &createdAt, &articleJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rec.PDFDOI = pdfDOI.String
	rec.Pages = int(pages.Int64)
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()

	rec.Article = new(article.Article)
	if err := json.Unmarshal([]byte(articleJSON), rec.Article); err != nil {
		return nil, fmt.Errorf("parsing article JSON for %s: %w", rec.ID, err)
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs, rows.Err()
}

func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,/") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
