// Package storage persists documents and notes in a SQLite database with
// whole-value semantics: callers read, modify, and write entire records.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tkorva/papershelf/internal/metadata"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

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

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			file_name TEXT NOT NULL,
			file_path TEXT,
			status TEXT NOT NULL,
			added_at INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			year TEXT NOT NULL,
			categories_json TEXT NOT NULL,
			keywords_json TEXT,
			abstract TEXT,
			journal TEXT,
			volume TEXT,
			number TEXT,
			pages TEXT,
			doi TEXT,
			url TEXT,
			bibtex TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_documents_file_name ON documents(file_name);

		CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			type TEXT NOT NULL,
			target_id TEXT,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_type ON notes(type);
	`

	_, err := db.Exec(schema)
	return err
}

const docFields = `id, file_name, file_path, status, added_at,
	title, authors_json, year, categories_json, keywords_json, abstract,
	journal, volume, number, pages, doi, url, bibtex`

// PutDocument stores a document, replacing any existing record with the
// same ID.
func (d *DB) PutDocument(doc metadata.Document) error {
	authorsJSON, err := json.Marshal(doc.Record.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}
	categoriesJSON, err := json.Marshal(doc.Record.Categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}
	keywordsJSON, err := json.Marshal(doc.Record.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO documents (`+docFields+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.FileName, doc.FilePath, doc.Status, doc.AddedAt.Unix(),
		doc.Record.Title, string(authorsJSON), doc.Record.Year,
		string(categoriesJSON), string(keywordsJSON), doc.Record.Abstract,
		doc.Record.Journal, doc.Record.Volume, doc.Record.Number,
		doc.Record.Pages, doc.Record.DOI, doc.Record.URL, doc.Record.BibTeX,
	)
	if err != nil {
		return fmt.Errorf("storing document %s: %w", doc.ID, err)
	}
	return nil
}

// GetDocument fetches a document by ID. Returns nil (not an error) when
// the document does not exist.
func (d *DB) GetDocument(id string) (*metadata.Document, error) {
	row := d.db.QueryRow(`SELECT `+docFields+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", id, err)
	}
	return doc, nil
}

// DeleteDocument removes a document by ID.
func (d *DB) DeleteDocument(id string) error {
	res, err := d.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document %q not found", id)
	}
	return nil
}

// ListDocuments returns all documents ordered by when they were added.
func (d *DB) ListDocuments() ([]metadata.Document, error) {
	rows, err := d.db.Query(`SELECT ` + docFields + ` FROM documents ORDER BY added_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []metadata.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*metadata.Document, error) {
	var doc metadata.Document
	var addedAt int64
	var authorsJSON, categoriesJSON string
	var keywordsJSON sql.NullString

	err := s.Scan(
		&doc.ID, &doc.FileName, &doc.FilePath, &doc.Status, &addedAt,
		&doc.Record.Title, &authorsJSON, &doc.Record.Year,
		&categoriesJSON, &keywordsJSON, &doc.Record.Abstract,
		&doc.Record.Journal, &doc.Record.Volume, &doc.Record.Number,
		&doc.Record.Pages, &doc.Record.DOI, &doc.Record.URL, &doc.Record.BibTeX,
	)
	if err != nil {
		return nil, err
	}

	doc.AddedAt = time.Unix(addedAt, 0).UTC()

	if err := json.Unmarshal([]byte(authorsJSON), &doc.Record.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors for %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal([]byte(categoriesJSON), &doc.Record.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories for %s: %w", doc.ID, err)
	}
	if keywordsJSON.Valid && keywordsJSON.String != "" {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &doc.Record.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords for %s: %w", doc.ID, err)
		}
	}

	return &doc, nil
}

// PutNote stores a note, replacing any existing note with the same ID.
func (d *DB) PutNote(note metadata.Note) error {
	_, err := d.db.Exec(`
		INSERT OR REPLACE INTO notes (id, title, content, type, target_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, string(note.Type), note.TargetID, note.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing note %s: %w", note.ID, err)
	}
	return nil
}

// GetNote fetches a note by ID. Returns nil (not an error) when the note
// does not exist.
func (d *DB) GetNote(id string) (*metadata.Note, error) {
	row := d.db.QueryRow(`SELECT id, title, content, type, target_id, created_at FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return note, nil
}

// DeleteNote removes a note by ID.
func (d *DB) DeleteNote(id string) error {
	res, err := d.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("note %q not found", id)
	}
	return nil
}

// ListNotes returns all notes ordered by creation time.
func (d *DB) ListNotes() ([]metadata.Note, error) {
	rows, err := d.db.Query(`SELECT id, title, content, type, target_id, created_at FROM notes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []metadata.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

func scanNote(s scanner) (*metadata.Note, error) {
	var note metadata.Note
	var noteType string
	var createdAt int64

	if err := s.Scan(&note.ID, &note.Title, &note.Content, &noteType, &note.TargetID, &createdAt); err != nil {
		return nil, err
	}

	note.Type = metadata.NoteType(noteType)
	note.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &note, nil
}
