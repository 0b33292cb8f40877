package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tkorva/papershelf/internal/metadata"
)

const (
	// abstractMaxLen caps a detected abstract section.
	abstractMaxLen = 1500
	// abstractFallbackLen is the length of the raw-text prefix used when
	// no abstract section is found.
	abstractFallbackLen = 400
)

// yearPattern matches the first plausible publication year in raw text.
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// abstractPattern locates an abstract-like section: a heading word
// followed by punctuation or whitespace, then at least 50 characters up
// to the next section boundary. RE2 caps bounded repetition at 1000, so
// the 1500-character ceiling is applied after capture.
var abstractPattern = regexp.MustCompile(
	`(?is)\b(?:abstract|summary)\b[\s:.\-]+(.{50,}?)(?:introduction|keywords|conclusion|references|1\.|\n\s*\n\s*\n|\z)`)

// wsPattern collapses whitespace runs.
var wsPattern = regexp.MustCompile(`\s+`)

// Extract derives a complete metadata record from raw document text and
// normalized properties. Every field-level heuristic degrades to its
// documented default; Extract itself never fails.
func Extract(rawText string, props Properties, fallbackName string) metadata.Record {
	rec := metadata.Record{
		Title:    props.Title,
		Authors:  props.Authors,
		Year:     props.Year,
		Keywords: props.Keywords,
		Abstract: Abstract(rawText),
	}

	if rec.Title == "" {
		rec.Title = FallbackTitle(fallbackName)
	}
	if rec.Year == "" {
		rec.Year = ScanYear(rawText)
	}
	if props.Subject != "" {
		rec.Categories = []string{props.Subject}
	}

	rec.Normalize()
	return rec
}

// FallbackTitle derives a title from a display file name by stripping
// its extension.
func FallbackTitle(fallbackName string) string {
	return strings.TrimSuffix(fallbackName, filepath.Ext(fallbackName))
}

// ScanYear returns the first 4-digit token in the 1900-2099 range, or "".
func ScanYear(text string) string {
	return yearPattern.FindString(text)
}

// Abstract finds the abstract section of the raw text, falling back to a
// prefix of the whole text when no section is recognizable.
func Abstract(rawText string) string {
	if strings.TrimSpace(rawText) == "" {
		return ""
	}

	if m := abstractPattern.FindStringSubmatch(rawText); m != nil {
		return collapseWhitespace(cutRunes(m[1], abstractMaxLen))
	}

	clean := collapseWhitespace(rawText)
	if len(clean) > abstractFallbackLen {
		return cutRunes(clean, abstractFallbackLen) + "..."
	}
	return clean
}

// cutRunes cuts s to at most limit bytes without splitting a UTF-8 rune.
func cutRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}

// collapseWhitespace reduces internal whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(wsPattern.ReplaceAllString(s, " "))
}
