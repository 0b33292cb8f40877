package sidecar

import (
	"strings"

	"github.com/tkorva/papershelf/internal/extract"
	"github.com/tkorva/papershelf/internal/metadata"
)

// Reconcile produces the final metadata record for one document. When no
// sidecar entry matches fileName (exact, case-sensitive), it delegates
// entirely to heuristic extraction. Otherwise all matching entries are
// folded left to right (a later non-empty field overrides an earlier one)
// and per-field precedence applies: explicit top-level field, then the
// same field from the raw-property sub-object, then the heuristic or
// file-name-derived fallback.
func Reconcile(fileName string, sources []Entry, rawText string, bag map[string]string, fallbackName string) metadata.Record {
	var matched []Entry
	for _, e := range sources {
		if e.FileName == fileName {
			matched = append(matched, e)
		}
	}

	if len(matched) == 0 {
		return extract.Extract(rawText, extract.NormalizeProperties(bag), fallbackName)
	}

	merged := merge(matched)

	// The nested raw-property object follows the same cleaning rules as a
	// document's own property bag.
	infoProps := extract.NormalizeProperties(map[string]string{
		"Title":        merged.infoValue("Title"),
		"Author":       merged.infoValue("Author"),
		"Subject":      merged.infoValue("Subject"),
		"Keywords":     merged.infoValue("Keywords"),
		"CreationDate": merged.infoValue("CreationDate"),
	})

	rec := metadata.Record{
		Title:      firstNonEmpty(strings.TrimSpace(merged.Title), infoProps.Title),
		Authors:    firstList(merged.Authors, infoProps.Authors),
		Year:       firstNonEmpty(strings.TrimSpace(merged.Year.String()), infoProps.Year),
		Categories: merged.Categories,
		Keywords:   firstList(merged.Keywords, infoProps.Keywords),
		Abstract:   merged.Abstract,
		Journal:    merged.Journal,
		Volume:     merged.Volume,
		Number:     merged.Number,
		Pages:      merged.Pages,
		DOI:        merged.DOI,
		URL:        merged.URL,
	}

	if rec.Title == "" {
		rec.Title = extract.FallbackTitle(fallbackName)
	}
	if rec.Year == "" {
		rec.Year = extract.ScanYear(rawText)
	}
	if len(rec.Categories) == 0 && infoProps.Subject != "" {
		rec.Categories = []string{infoProps.Subject}
	}
	if strings.TrimSpace(rec.Abstract) == "" {
		rec.Abstract = extract.Abstract(rawText)
	}

	rec.Normalize()
	return rec
}

// merge folds matching entries left to right. A later field overrides an
// earlier one only when non-empty; empty lists never blank out earlier
// values. Raw-property keys merge individually under the same rule.
func merge(entries []Entry) Entry {
	var out Entry
	for _, e := range entries {
		out.FileName = e.FileName
		out.FilePath = override(out.FilePath, e.FilePath)
		out.Title = override(out.Title, e.Title)
		out.Year = FlexibleString(override(out.Year.String(), e.Year.String()))
		out.Abstract = override(out.Abstract, e.Abstract)
		out.Journal = override(out.Journal, e.Journal)
		out.Volume = override(out.Volume, e.Volume)
		out.Number = override(out.Number, e.Number)
		out.Pages = override(out.Pages, e.Pages)
		out.DOI = override(out.DOI, e.DOI)
		out.URL = override(out.URL, e.URL)

		if len(e.Authors) > 0 {
			out.Authors = e.Authors
		}
		if len(e.Categories) > 0 {
			out.Categories = e.Categories
		}
		if len(e.Keywords) > 0 {
			out.Keywords = e.Keywords
		}

		for k, v := range e.Info {
			if strings.TrimSpace(v) == "" {
				continue
			}
			if out.Info == nil {
				out.Info = make(map[string]string)
			}
			out.Info[k] = v
		}
	}
	return out
}

func override(old, next string) string {
	if strings.TrimSpace(next) != "" {
		return next
	}
	return old
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstList(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
