package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/bibtex"
	"github.com/tkorva/papershelf/internal/extract"
	"github.com/tkorva/papershelf/internal/metadata"
	"github.com/tkorva/papershelf/internal/pdftext"
	"github.com/tkorva/papershelf/internal/sidecar"
	"github.com/tkorva/papershelf/internal/storage"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <pdf>...",
	Short: "Add PDF documents to the library",
	Long: `Add PDF documents to the library.

Metadata is reconciled from sidecar files when one matches the document's
file name, and derived heuristically from the document's embedded
properties and text otherwise. A document whose text and properties are
both unreadable is stored with status "failed".

Examples:
  shelf add paper.pdf
  shelf add ~/Downloads/*.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// AddResult reports one added document.
type AddResult struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot, db := openLibrary()
	defer db.Close()

	sidecarEntries := loadSidecarEntries(repoRoot)

	var results []AddResult
	for _, path := range args {
		results = append(results, addDocument(db, sidecarEntries, path))
	}

	if humanOutput {
		for _, r := range results {
			if r.Status == metadata.StatusFailed {
				fmt.Printf("FAILED %s: %s\n", r.FileName, r.Error)
				continue
			}
			fmt.Printf("Added %s: %s\n", r.ID, truncateString(r.Title, ListTitleMaxLen))
		}
	} else {
		outputJSON(results)
	}
	return nil
}

// addDocument runs the extraction pipeline for one file and persists the
// outcome. A failed extraction is reported once and stored as a failed
// document; it never aborts the batch.
func addDocument(db *storage.DB, sidecarEntries []sidecar.Entry, path string) AddResult {
	fileName := filepath.Base(path)
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	rawText, textErr := pdftext.ReadText(path, pdftext.DefaultMaxPages)
	bag, bagErr := pdftext.ReadProperties(path)

	// Only a fully unreadable source fails the document; a missing text
	// layer or property dictionary alone degrades to heuristics.
	if textErr != nil && bagErr != nil {
		extractErr := &extract.ExtractionError{FileName: fileName, Err: textErr}

		rec := extract.Extract("", extract.Properties{}, fileName)
		doc := metadata.Document{
			ID:       fileName,
			FileName: fileName,
			FilePath: absPath,
			Status:   metadata.StatusFailed,
			AddedAt:  time.Now(),
			Record:   rec,
		}
		if err := db.PutDocument(doc); err != nil {
			return AddResult{ID: doc.ID, FileName: fileName, Status: metadata.StatusFailed, Error: err.Error()}
		}
		return AddResult{ID: doc.ID, FileName: fileName, Title: rec.Title, Status: metadata.StatusFailed, Error: extractErr.Error()}
	}

	rec := sidecar.Reconcile(fileName, sidecarEntries, rawText, bag, fileName)

	key, entry := bibtex.Synthesize(rec, fileName, absPath)
	rec.BibTeX = entry

	id, err := resolveDocumentID(db, key, fileName)
	if err != nil {
		return AddResult{ID: key, FileName: fileName, Title: rec.Title, Status: metadata.StatusFailed, Error: err.Error()}
	}
	if id != key {
		outputWarning("citation key %q is already used by another document; storing %s as %q", key, fileName, id)
	}

	doc := metadata.Document{
		ID:       id,
		FileName: fileName,
		FilePath: absPath,
		Status:   metadata.StatusOK,
		AddedAt:  time.Now(),
		Record:   rec,
	}
	if err := db.PutDocument(doc); err != nil {
		return AddResult{ID: id, FileName: fileName, Title: rec.Title, Status: metadata.StatusFailed, Error: err.Error()}
	}

	return AddResult{ID: id, FileName: fileName, Title: rec.Title, Status: metadata.StatusOK}
}

// resolveDocumentID picks the storage ID for a document with the given
// citation key. Re-adding the same file keeps its ID so the record is
// updated in place; a different file whose key collides gets a numbered
// suffix instead of replacing the stored document. The citation key in
// the rendered entry is left as synthesized.
func resolveDocumentID(db *storage.DB, key, fileName string) (string, error) {
	id := key
	for n := 2; ; n++ {
		existing, err := db.GetDocument(id)
		if err != nil {
			return "", err
		}
		if existing == nil || existing.FileName == fileName {
			return id, nil
		}
		id = fmt.Sprintf("%s-%d", key, n)
	}
}
