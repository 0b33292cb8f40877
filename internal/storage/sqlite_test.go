package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tkorva/papershelf/internal/metadata"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("OpenDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleDocument() metadata.Document {
	return metadata.Document{
		ID:       "smith2020deep",
		FileName: "smith_2020.pdf",
		FilePath: "/lib/smith_2020.pdf",
		Status:   metadata.StatusOK,
		AddedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Record: metadata.Record{
			Title:      "Deep Parsing Models",
			Authors:    []string{"Smith, Jane", "Doe, John"},
			Year:       "2020",
			Categories: []string{"AI", "NLP"},
			Keywords:   []string{"parsing"},
			Abstract:   "We parse things.",
			Journal:    "J. of Parsing",
			DOI:        "10.1000/xyz",
			BibTeX:     "@misc{smith2020deep,\n}\n",
		},
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	db := testDB(t)
	doc := sampleDocument()

	if err := db.PutDocument(doc); err != nil {
		t.Fatalf("PutDocument() error: %v", err)
	}

	got, err := db.GetDocument(doc.ID)
	if err != nil {
		t.Fatalf("GetDocument() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetDocument() returned nil for a stored document")
	}
	if !got.AddedAt.Equal(doc.AddedAt) {
		t.Errorf("AddedAt = %v, want %v", got.AddedAt, doc.AddedAt)
	}
	got.AddedAt = doc.AddedAt
	if !reflect.DeepEqual(*got, doc) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, doc)
	}
}

func TestGetDocument_Missing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetDocument("nope")
	if err != nil {
		t.Fatalf("GetDocument() error: %v", err)
	}
	if got != nil {
		t.Errorf("missing document should be nil, got %+v", got)
	}
}

func TestPutDocument_Replaces(t *testing.T) {
	db := testDB(t)
	doc := sampleDocument()
	db.PutDocument(doc)

	doc.Record.Title = "Revised Title"
	if err := db.PutDocument(doc); err != nil {
		t.Fatalf("PutDocument() error: %v", err)
	}

	got, _ := db.GetDocument(doc.ID)
	if got.Record.Title != "Revised Title" {
		t.Errorf("Title = %q, want the replaced value", got.Record.Title)
	}

	docs, _ := db.ListDocuments()
	if len(docs) != 1 {
		t.Errorf("got %d documents, replace must not duplicate", len(docs))
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testDB(t)
	doc := sampleDocument()
	db.PutDocument(doc)

	if err := db.DeleteDocument(doc.ID); err != nil {
		t.Fatalf("DeleteDocument() error: %v", err)
	}
	if got, _ := db.GetDocument(doc.ID); got != nil {
		t.Errorf("document still present after delete")
	}

	if err := db.DeleteDocument(doc.ID); err == nil {
		t.Error("deleting a missing document should fail")
	}
}

func TestListDocuments_Order(t *testing.T) {
	db := testDB(t)

	older := sampleDocument()
	older.ID = "older"
	older.AddedAt = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleDocument()
	newer.ID = "newer"
	newer.AddedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	db.PutDocument(newer)
	db.PutDocument(older)

	docs, err := db.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments() error: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "older" || docs[1].ID != "newer" {
		t.Errorf("documents should list oldest first, got %v, %v", docs[0].ID, docs[1].ID)
	}
}

func TestNoteRoundTrip(t *testing.T) {
	db := testDB(t)
	note := metadata.Note{
		ID:        "n1",
		Title:     "Methods",
		Content:   "Solid eval.",
		Type:      metadata.NoteArticle,
		TargetID:  "smith2020deep",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := db.PutNote(note); err != nil {
		t.Fatalf("PutNote() error: %v", err)
	}

	got, err := db.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetNote() returned nil for a stored note")
	}
	if !got.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, note.CreatedAt)
	}
	got.CreatedAt = note.CreatedAt
	if !reflect.DeepEqual(*got, note) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, note)
	}
}

func TestNoteMissingAndDelete(t *testing.T) {
	db := testDB(t)

	if got, err := db.GetNote("nope"); err != nil || got != nil {
		t.Errorf("GetNote(missing) = %v, %v; want nil, nil", got, err)
	}
	if err := db.DeleteNote("nope"); err == nil {
		t.Error("deleting a missing note should fail")
	}

	db.PutNote(metadata.Note{ID: "n1", Title: "T", Content: "C", Type: metadata.NoteGeneral, CreatedAt: time.Now()})
	if err := db.DeleteNote("n1"); err != nil {
		t.Errorf("DeleteNote() error: %v", err)
	}
	if notes, _ := db.ListNotes(); len(notes) != 0 {
		t.Errorf("notes remain after delete: %v", notes)
	}
}
