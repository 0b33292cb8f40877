package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tkorva/papershelf/internal/metadata"
	"github.com/tkorva/papershelf/internal/storage"
)

func testLibrary(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("OpenDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAddDocument_UnreadableSourceStoredFailed(t *testing.T) {
	db := testLibrary(t)
	path := filepath.Join(t.TempDir(), "ghost.pdf")

	res := addDocument(db, nil, path)

	if res.Status != metadata.StatusFailed {
		t.Fatalf("Status = %q, want %q", res.Status, metadata.StatusFailed)
	}
	if res.ID != "ghost.pdf" {
		t.Errorf("ID = %q, failed documents keep their file name", res.ID)
	}
	if res.Error == "" {
		t.Error("failed result should carry the extraction error")
	}

	doc, err := db.GetDocument("ghost.pdf")
	if err != nil {
		t.Fatalf("GetDocument() error: %v", err)
	}
	if doc == nil {
		t.Fatal("failed document should still be stored")
	}
	if doc.Status != metadata.StatusFailed {
		t.Errorf("stored status = %q, want %q", doc.Status, metadata.StatusFailed)
	}
	if doc.Record.Title != "ghost" {
		t.Errorf("Title = %q, want the file-name fallback", doc.Record.Title)
	}
	if len(doc.Record.Authors) != 1 || doc.Record.Authors[0] != metadata.UnknownAuthor {
		t.Errorf("Authors = %v, want the default", doc.Record.Authors)
	}
	if doc.Record.Year != metadata.UnknownYear {
		t.Errorf("Year = %q, want %q", doc.Record.Year, metadata.UnknownYear)
	}
}

func TestAddDocument_FailureDoesNotAbortBatch(t *testing.T) {
	db := testLibrary(t)
	dir := t.TempDir()

	first := addDocument(db, nil, filepath.Join(dir, "one.pdf"))
	second := addDocument(db, nil, filepath.Join(dir, "two.pdf"))

	if first.Status != metadata.StatusFailed || second.Status != metadata.StatusFailed {
		t.Fatalf("both adds should report failure, got %q and %q", first.Status, second.Status)
	}

	docs, err := db.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments() error: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d stored documents, want 2", len(docs))
	}
}

func TestResolveDocumentID(t *testing.T) {
	db := testLibrary(t)
	stored := metadata.Document{
		ID:       "smith2020deep",
		FileName: "a.pdf",
		Status:   metadata.StatusOK,
		AddedAt:  time.Now(),
		Record:   metadata.Record{Title: "First Paper", Authors: []string{"Smith, Jane"}, Year: "2020", Categories: []string{"AI"}},
	}
	if err := db.PutDocument(stored); err != nil {
		t.Fatalf("PutDocument() error: %v", err)
	}

	tests := []struct {
		name     string
		key      string
		fileName string
		want     string
	}{
		{"fresh key", "doe2021other", "b.pdf", "doe2021other"},
		{"same file keeps its ID", "smith2020deep", "a.pdf", "smith2020deep"},
		{"colliding key gets a suffix", "smith2020deep", "b.pdf", "smith2020deep-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDocumentID(db, tt.key, tt.fileName)
			if err != nil {
				t.Fatalf("resolveDocumentID() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDocumentID(%q, %q) = %q, want %q", tt.key, tt.fileName, got, tt.want)
			}
		})
	}
}

func TestResolveDocumentID_DoesNotReplaceStored(t *testing.T) {
	db := testLibrary(t)
	original := metadata.Document{
		ID:       "smith2020deep",
		FileName: "a.pdf",
		Status:   metadata.StatusOK,
		AddedAt:  time.Now(),
		Record:   metadata.Record{Title: "First Paper", Authors: []string{"Smith, Jane"}, Year: "2020", Categories: []string{"AI"}},
	}
	db.PutDocument(original)

	id, err := resolveDocumentID(db, "smith2020deep", "b.pdf")
	if err != nil {
		t.Fatalf("resolveDocumentID() error: %v", err)
	}
	collider := original
	collider.ID = id
	collider.FileName = "b.pdf"
	collider.Record.Title = "Second Paper"
	db.PutDocument(collider)

	kept, _ := db.GetDocument("smith2020deep")
	if kept == nil || kept.Record.Title != "First Paper" {
		t.Fatalf("original document was replaced: %+v", kept)
	}
	added, _ := db.GetDocument("smith2020deep-2")
	if added == nil || added.Record.Title != "Second Paper" {
		t.Fatalf("colliding document not stored under suffixed ID: %+v", added)
	}

	// Re-adding the suffixed file finds its own row again.
	again, err := resolveDocumentID(db, "smith2020deep", "b.pdf")
	if err != nil {
		t.Fatalf("resolveDocumentID() error: %v", err)
	}
	if again != "smith2020deep-2" {
		t.Errorf("re-resolve = %q, want the existing suffixed ID", again)
	}
}
