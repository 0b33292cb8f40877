// Package pdftext acquires raw text and embedded properties from PDF
// files. It is the parsing boundary: the extraction pipeline consumes its
// output and never touches the PDF object model itself.
package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// DefaultMaxPages bounds text extraction to the front matter, where
	// title, authors, and abstract live.
	DefaultMaxPages = 4

	// TextBudget caps the extracted text length. Heuristics only need the
	// first few pages.
	TextBudget = 8000
)

// propertyKeys are the Info dictionary entries exposed as the property
// bag. Values are decoded to plain strings.
var propertyKeys = []string{"Title", "Author", "Subject", "Keywords", "CreationDate", "ModDate", "Creator", "Producer"}

// ReadText extracts plain text from the first maxPages pages, truncated
// to TextBudget characters.
func ReadText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")

		if b.Len() >= TextBudget {
			break
		}
	}

	return Truncate(b.String(), TextBudget), nil
}

// ReadProperties reads the document Info dictionary as a string property
// bag. Missing or non-string entries are simply absent from the result.
func ReadProperties(filePath string) (map[string]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bag := make(map[string]string)

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return bag, nil
	}

	for _, key := range propertyKeys {
		v := info.Key(key)
		if v.Kind() != pdf.String {
			continue
		}
		if text := strings.TrimSpace(v.Text()); text != "" {
			bag[key] = text
		}
	}

	return bag, nil
}

// Truncate cuts s to at most limit bytes without splitting a UTF-8 rune.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
