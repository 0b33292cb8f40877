package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tkorva/papershelf/internal/bibtex"
	"github.com/tkorva/papershelf/internal/config"
	"github.com/tkorva/papershelf/internal/export"
	"github.com/tkorva/papershelf/internal/metadata"
	"github.com/tkorva/papershelf/internal/storage"
)

var (
	exportFormat   string
	exportRefs     bool
	exportNotes    bool
	exportGeneral  bool
	exportCategory bool
	exportArticle  bool
	exportKeys     []string
	exportOut      string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: text, csv, or latex (default from config)")
	exportCmd.Flags().BoolVar(&exportRefs, "refs", true, "Include the bibliography file")
	exportCmd.Flags().BoolVar(&exportNotes, "notes", true, "Include notes")
	exportCmd.Flags().BoolVar(&exportGeneral, "general", true, "Include general notes")
	exportCmd.Flags().BoolVar(&exportCategory, "category", true, "Include category notes")
	exportCmd.Flags().BoolVar(&exportArticle, "article", true, "Include article notes")
	exportCmd.Flags().StringSliceVar(&exportKeys, "keys", nil, "Restrict the bibliography to these document IDs")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Directory to write output files into")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library as references and notes",
	Long: `Export the library's bibliography and notes.

The notes document is written as notes.txt, notes.csv, or notes.tex
depending on the format. When references are included, the
bibliography is written alongside it as references.bib; the latex
format additionally writes cited.bib covering the articles the notes
reference.`,
	RunE: runExport,
}

// ExportResult reports the files a successful export produced.
type ExportResult struct {
	Format string   `json:"format"`
	Files  []string `json:"files"`
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot, db := openLibrary()
	defer db.Close()

	format := exportFormat
	if format == "" {
		cfg := loadRepoConfig(repoRoot)
		format = cfg.DefaultFormat
	}
	if format == "" {
		if global, err := config.LoadGlobalConfig(); err == nil {
			format = global.DefaultFormat
		}
	}

	sel, err := buildSelection(db, export.Format(format))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	bundle, err := export.Render(*sel)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if bundle.Empty() {
		if humanOutput {
			fmt.Println("Nothing to export")
		} else {
			outputJSON(ExportResult{Format: string(sel.Format)})
		}
		return nil
	}

	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		exitWithError(ExitError, "creating output directory: %v", err)
	}

	var written []string
	docs := append([]export.Document{}, bundle.Aux...)
	if bundle.Main.Content != "" {
		docs = append([]export.Document{bundle.Main}, docs...)
	}
	for _, doc := range docs {
		path := filepath.Join(exportOut, doc.Name)
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", doc.Name, err)
		}
		written = append(written, path)
	}

	if humanOutput {
		for _, path := range written {
			fmt.Printf("Wrote %s\n", path)
		}
	} else {
		outputJSON(ExportResult{Format: string(sel.Format), Files: written})
	}
	return nil
}

// buildSelection assembles the export selection from the stored documents
// and notes, honoring the include flags.
func buildSelection(db *storage.DB, format export.Format) (*export.Selection, error) {
	sel := &export.Selection{
		IncludeReferences: exportRefs,
		IncludeNotes:      exportNotes,
		Category:          make(map[string][]metadata.Note),
		Format:            format,
	}

	docs, err := db.ListDocuments()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]metadata.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	if sel.IncludeReferences {
		keep := func(string) bool { return true }
		if len(exportKeys) > 0 {
			wanted := make(map[string]bool, len(exportKeys))
			for _, k := range exportKeys {
				wanted[k] = true
			}
			keep = func(id string) bool { return wanted[id] }
		}
		for _, doc := range docs {
			if doc.Status != metadata.StatusOK || !keep(doc.ID) {
				continue
			}
			entry := doc.Record.BibTeX
			if entry == "" {
				_, entry = bibtex.Synthesize(doc.Record, doc.FileName, doc.FilePath)
			}
			sel.Entries = append(sel.Entries, entry)
		}
	}

	if !sel.IncludeNotes {
		return sel, nil
	}

	notes, err := db.ListNotes()
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		switch n.Type {
		case metadata.NoteGeneral:
			if exportGeneral {
				sel.General = append(sel.General, n)
			}
		case metadata.NoteCategory:
			if exportCategory {
				sel.Category[n.TargetID] = append(sel.Category[n.TargetID], n)
			}
		case metadata.NoteArticle:
			if !exportArticle {
				continue
			}
			doc, ok := byID[n.TargetID]
			if !ok {
				outputWarning("skipping note %q: document %q not found", n.Title, n.TargetID)
				continue
			}
			sel.Articles = append(sel.Articles, export.ArticleNote{Note: n, Doc: doc})
		}
	}
	if len(sel.Category) == 0 {
		sel.Category = nil
	}

	return sel, nil
}
