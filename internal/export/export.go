// Package export renders curated selections of the library into
// deliverable document bundles: plain text, delimited data, or a LaTeX
// source with accompanying bibliography files.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tkorva/papershelf/internal/bibtex"
	"github.com/tkorva/papershelf/internal/metadata"
)

// Format selects the output rendering.
type Format string

const (
	FormatText  Format = "text"
	FormatCSV   Format = "csv"
	FormatLaTeX Format = "latex"
)

// ParseFormat validates a format name. The empty string defaults to text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatText, nil
	case FormatText, FormatCSV, FormatLaTeX:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format: %q (valid: text, csv, latex)", s)
}

// Names of the auxiliary bibliography files.
const (
	ReferencesFile = "references.bib"
	CitedFile      = "cited.bib"
)

// Document is one rendered output file.
type Document struct {
	Name    string
	Content string
}

// Bundle is the result of a render: a main document plus any auxiliary
// files that belong next to it.
type Bundle struct {
	Main Document
	Aux  []Document
}

// Empty reports whether the render produced nothing at all.
func (b Bundle) Empty() bool {
	return b.Main.Content == "" && len(b.Aux) == 0
}

// ArticleNote pairs an article note with the document it annotates.
type ArticleNote struct {
	Note metadata.Note
	Doc  metadata.Document
}

// Selection describes what to export. Entries are pre-rendered
// bibliographic entries; Category maps category names to their notes.
type Selection struct {
	IncludeReferences bool
	IncludeNotes      bool

	Entries  []string
	General  []metadata.Note
	Category map[string][]metadata.Note
	Articles []ArticleNote

	Format Format
}

// Render produces the bundle for a selection. The main document holds the
// notes rendering; references travel as auxiliary .bib files so a LaTeX
// main can \bibliography them directly.
func Render(sel Selection) (Bundle, error) {
	format, err := ParseFormat(string(sel.Format))
	if err != nil {
		return Bundle{}, err
	}

	var bundle Bundle

	if sel.IncludeNotes && hasNotes(sel) {
		switch format {
		case FormatText:
			bundle.Main = Document{Name: "notes.txt", Content: renderTextNotes(sel)}
		case FormatCSV:
			content, err := renderCSVNotes(sel)
			if err != nil {
				return Bundle{}, err
			}
			bundle.Main = Document{Name: "notes.csv", Content: content}
		case FormatLaTeX:
			main, cited := renderLaTeXNotes(sel)
			bundle.Main = Document{Name: "notes.tex", Content: main}
			if cited != "" {
				bundle.Aux = append(bundle.Aux, Document{Name: CitedFile, Content: cited})
			}
		}
	}

	if sel.IncludeReferences && len(sel.Entries) > 0 {
		bundle.Aux = append(bundle.Aux, Document{
			Name:    ReferencesFile,
			Content: References(sel.Entries),
		})
	}

	return bundle, nil
}

// References joins rendered entries into a .bib file body.
func References(entries []string) string {
	trimmed := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			trimmed = append(trimmed, e)
		}
	}
	if len(trimmed) == 0 {
		return ""
	}
	return strings.Join(trimmed, "\n\n") + "\n"
}

func hasNotes(sel Selection) bool {
	return len(sel.General) > 0 || len(sel.Category) > 0 || len(sel.Articles) > 0
}

// categoryNames returns the category keys in sorted order so renders are
// deterministic regardless of map iteration.
func categoryNames(sel Selection) []string {
	names := make([]string, 0, len(sel.Category))
	for name := range sel.Category {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// citedEntries collects the distinct citation keys and entries referenced
// by article notes, in first-reference order. Documents without a cached
// entry get one synthesized on the fly.
func citedEntries(articles []ArticleNote) (keys, entries []string) {
	seen := make(map[string]bool)
	for _, a := range articles {
		entry := a.Doc.Record.BibTeX
		key := bibtex.KeyOf(entry)
		if key == "" {
			key, entry = bibtex.Synthesize(a.Doc.Record, a.Doc.FileName, a.Doc.FilePath)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
		entries = append(entries, entry)
	}
	return keys, entries
}
