// Package metadata defines the core domain types for the document library.
package metadata

import "strings"

// Defaults applied when a record would otherwise violate its invariants.
const (
	UnknownAuthor   = "Unknown Author"
	UnknownYear     = "Unknown"
	DefaultCategory = "Uncategorized"
)

// Record is the normalized bibliographic description of one document.
type Record struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       string   `json:"year"` // 4-digit year or "Unknown"
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
	Abstract   string   `json:"abstract"`

	Journal string `json:"journal,omitempty"`
	Volume  string `json:"volume,omitempty"`
	Number  string `json:"number,omitempty"`
	Pages   string `json:"pages,omitempty"`
	DOI     string `json:"doi,omitempty"`
	URL     string `json:"url,omitempty"`

	// BibTeX caches the synthesized bibliographic entry.
	BibTeX string `json:"bibtex,omitempty"`
}

// Normalize trims every string field and enforces the record invariants:
// Authors and Categories are never empty, Year is never blank.
func (r *Record) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Year = strings.TrimSpace(r.Year)
	r.Abstract = strings.TrimSpace(r.Abstract)
	r.Journal = strings.TrimSpace(r.Journal)
	r.Volume = strings.TrimSpace(r.Volume)
	r.Number = strings.TrimSpace(r.Number)
	r.Pages = strings.TrimSpace(r.Pages)
	r.DOI = strings.TrimSpace(r.DOI)
	r.URL = strings.TrimSpace(r.URL)

	r.Authors = trimAll(r.Authors)
	r.Categories = trimAll(r.Categories)
	r.Keywords = trimAll(r.Keywords)

	if len(r.Authors) == 0 {
		r.Authors = []string{UnknownAuthor}
	}
	if len(r.Categories) == 0 {
		r.Categories = []string{DefaultCategory}
	}
	if r.Year == "" {
		r.Year = UnknownYear
	}
}

// trimAll trims each element and drops empties, preserving order and
// insertion-order uniqueness.
func trimAll(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
