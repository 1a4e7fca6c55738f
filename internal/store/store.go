// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists pipeline runs in SQLite and serves full-text
// queries over the indexed document corpus.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/paperlens/pkg/types"
)

const (
	indexDir  = "index"
	exportDir = "export"
	dbFile    = "paperlens.db"
)

// Store manages the document index SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the index database at dataDir/index/paperlens.db,
// creating the schema when absent.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			documents INTEGER NOT NULL,
			comparisons INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			run_id TEXT NOT NULL REFERENCES runs(id),
			title TEXT,
			abstract TEXT,
			total_chars INTEGER,
			status TEXT NOT NULL,
			validation_passed INTEGER NOT NULL,
			record TEXT NOT NULL,
			full_text TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
		`CREATE TABLE IF NOT EXISTS comparisons (
			run_id TEXT NOT NULL REFERENCES runs(id),
			id_a TEXT NOT NULL,
			id_b TEXT NOT NULL,
			cosine_similarity REAL NOT NULL,
			keyword_overlap REAL NOT NULL,
			PRIMARY KEY (run_id, id_a, id_b)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='documents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE documents_fts USING fts5(full_text, content=documents, content_rowid=rowid)`,
			`CREATE TRIGGER documents_ai AFTER INSERT ON documents BEGIN
				INSERT INTO documents_fts(rowid, full_text) VALUES (new.rowid, new.full_text);
			END`,
			`CREATE TRIGGER documents_ad AFTER DELETE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, full_text) VALUES('delete', old.rowid, old.full_text);
			END`,
			`CREATE TRIGGER documents_au AFTER UPDATE ON documents BEGIN
				INSERT INTO documents_fts(documents_fts, rowid, full_text) VALUES('delete', old.rowid, old.full_text);
				INSERT INTO documents_fts(rowid, full_text) VALUES (new.rowid, new.full_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SaveRun persists one pipeline run: the run header, every document record,
// and the comparison matrix. A document ID already present from an earlier
// run is replaced so the index always reflects the latest processing.
func (s *Store) SaveRun(ctx context.Context, runID string, records []types.DocumentRecord, comparisons []types.ComparisonRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, documents, comparisons) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), len(records), len(comparisons),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (id, run_id, title, abstract, total_chars, status, validation_passed, record, full_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		// Explicit delete keeps the FTS shadow table in sync.
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, rec.Document.ID); err != nil {
			return fmt.Errorf("deleting stale document %s: %w", rec.Document.ID, err)
		}

		recordJSON, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record %s: %w", rec.Document.ID, err)
		}

		passed := 0
		if rec.Validation.Passed {
			passed = 1
		}

		_, err = stmt.ExecContext(ctx,
			rec.Document.ID, runID, rec.Sections.Title, rec.Sections.Abstract,
			rec.Document.TotalChars, string(rec.Status), passed,
			string(recordJSON), rec.Sections.FullText,
		)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", rec.Document.ID, err)
		}
	}

	for _, cmp := range comparisons {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comparisons (run_id, id_a, id_b, cosine_similarity, keyword_overlap)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, cmp.IDA, cmp.IDB, cmp.CosineSimilarity, cmp.KeywordOverlap,
		)
		if err != nil {
			return fmt.Errorf("inserting comparison (%s, %s): %w", cmp.IDA, cmp.IDB, err)
		}
	}

	return tx.Commit()
}

// QueryResult is one full-text match with its stored record.
type QueryResult struct {
	types.DocumentRecord
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Query runs an FTS5 match over indexed full text and returns matching
// document records ranked by relevance. An empty query is an error.
func (s *Store) Query(ctx context.Context, query string, maxResults int) ([]QueryResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.record, snippet(documents_fts, 0, '[', ']', '...', 12)
		 FROM documents_fts
		 JOIN documents d ON d.rowid = documents_fts.rowid
		 WHERE documents_fts MATCH ?
		 ORDER BY documents_fts.rank
		 LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var recordJSON string
		var qr QueryResult
		if err := rows.Scan(&recordJSON, &qr.Snippet); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(recordJSON), &qr.DocumentRecord); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}

// Records returns every stored document record, ordered by document ID.
func (s *Store) Records(ctx context.Context) ([]types.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []types.DocumentRecord
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var rec types.DocumentRecord
		if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Comparisons returns the comparison matrix of the most recent run,
// ordered by pair.
func (s *Store) Comparisons(ctx context.Context) ([]types.ComparisonRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_a, id_b, cosine_similarity, keyword_overlap
		 FROM comparisons
		 WHERE run_id = (SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT 1)
		 ORDER BY id_a, id_b`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying comparisons: %w", err)
	}
	defer rows.Close()

	var comparisons []types.ComparisonRecord
	for rows.Next() {
		var cmp types.ComparisonRecord
		if err := rows.Scan(&cmp.IDA, &cmp.IDB, &cmp.CosineSimilarity, &cmp.KeywordOverlap); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		comparisons = append(comparisons, cmp)
	}

	return comparisons, rows.Err()
}
