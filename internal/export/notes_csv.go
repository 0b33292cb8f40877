package export

import (
	"encoding/csv"
	"strings"
	"time"
)

// renderCSVNotes writes one row per note. The group column carries the
// category name for category notes and the document title for article
// notes; sections keep a fixed order so the output is stable.
func renderCSVNotes(sel Selection) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"type", "group", "title", "content", "created_at"}); err != nil {
		return "", err
	}

	for _, n := range sel.General {
		if err := w.Write([]string{"general", "", n.Title, n.Content, csvTime(n.CreatedAt)}); err != nil {
			return "", err
		}
	}

	for _, name := range categoryNames(sel) {
		for _, n := range sel.Category[name] {
			if err := w.Write([]string{"category", name, n.Title, n.Content, csvTime(n.CreatedAt)}); err != nil {
				return "", err
			}
		}
	}

	for _, a := range sel.Articles {
		row := []string{"article", a.Doc.Record.Title, a.Note.Title, a.Note.Content, csvTime(a.Note.CreatedAt)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
