package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const corpusSchema = `
CREATE TABLE IF NOT EXISTS corpus_pages (
	doc_id      TEXT NOT NULL,
	page_number INTEGER NOT NULL,
	page_text   TEXT NOT NULL,
	fragments   BLOB NOT NULL,
	updated_at  INTEGER NOT NULL DEFAULT (strftime('%s','now')),
	PRIMARY KEY (doc_id, page_number)
);
`

// SQLiteTier persists extracted corpora in a local SQLite database so a
// document survives process restarts without re-extraction.
type SQLiteTier struct {
	db *sql.DB
}

var _ Tier = (*SQLiteTier)(nil)

// NewSQLiteTier opens (or creates) the corpus database at dbPath. The
// connection uses WAL mode with a busy timeout so concurrent sessions on
// the same database do not trip over each other.
func NewSQLiteTier(dbPath string) (*SQLiteTier, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open corpus database: %w", err)
	}
	if _, err := db.Exec(corpusSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus schema: %w", err)
	}
	return &SQLiteTier{db: db}, nil
}

// Name identifies the tier in logs
func (t *SQLiteTier) Name() string { return "sqlite" }

// Load returns every cached page for a document in page order
func (t *SQLiteTier) Load(ctx context.Context, docID string) ([]PageRecord, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT page_number, page_text, fragments
		 FROM corpus_pages
		 WHERE doc_id = ?
		 ORDER BY page_number`, docID)
	if err != nil {
		return nil, fmt.Errorf("query corpus pages: %w", err)
	}
	defer rows.Close()

	var records []PageRecord
	for rows.Next() {
		var (
			record PageRecord
			blob   []byte
		)
		if err := rows.Scan(&record.PageNumber, &record.Text, &blob); err != nil {
			return nil, fmt.Errorf("scan corpus page: %w", err)
		}
		if err := json.Unmarshal(blob, &record.Fragments); err != nil {
			return nil, fmt.Errorf("decode fragments for page %d: %w", record.PageNumber, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus pages: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// Store upserts a document's pages in one transaction
func (t *SQLiteTier) Store(ctx context.Context, docID string, pages []PageRecord) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin corpus store: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO corpus_pages (doc_id, page_number, page_text, fragments)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (doc_id, page_number) DO UPDATE SET
			page_text = excluded.page_text,
			fragments = excluded.fragments,
			updated_at = strftime('%s','now')`)
	if err != nil {
		return fmt.Errorf("prepare corpus store: %w", err)
	}
	defer stmt.Close()

	for _, page := range pages {
		blob, err := json.Marshal(page.Fragments)
		if err != nil {
			return fmt.Errorf("encode fragments for page %d: %w", page.PageNumber, err)
		}
		if _, err := stmt.ExecContext(ctx, docID, page.PageNumber, page.Text, blob); err != nil {
			return fmt.Errorf("store page %d: %w", page.PageNumber, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit corpus store: %w", err)
	}
	return nil
}

// Delete evicts a document
func (t *SQLiteTier) Delete(ctx context.Context, docID string) error {
	if _, err := t.db.ExecContext(ctx,
		`DELETE FROM corpus_pages WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("delete document %s: %w", docID, err)
	}
	return nil
}

// Clear removes every cached document
func (t *SQLiteTier) Clear(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM corpus_pages`); err != nil {
		return fmt.Errorf("clear corpus cache: %w", err)
	}
	return nil
}

// DocumentStat summarizes one cached document
type DocumentStat struct {
	DocID     string
	Pages     int
	UpdatedAt time.Time
}

// Documents lists the cached documents, most recently updated first
func (t *SQLiteTier) Documents(ctx context.Context) ([]DocumentStat, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT doc_id, COUNT(*), MAX(updated_at)
		 FROM corpus_pages
		 GROUP BY doc_id
		 ORDER BY MAX(updated_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("query cached documents: %w", err)
	}
	defer rows.Close()

	var stats []DocumentStat
	for rows.Next() {
		var (
			stat DocumentStat
			unix int64
		)
		if err := rows.Scan(&stat.DocID, &stat.Pages, &unix); err != nil {
			return nil, fmt.Errorf("scan document stat: %w", err)
		}
		stat.UpdatedAt = time.Unix(unix, 0)
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached documents: %w", err)
	}
	return stats, nil
}

// Close releases the database connection
func (t *SQLiteTier) Close() error {
	return t.db.Close()
}
