// Package extract derives metadata records from raw document text and
// embedded property dictionaries.
package extract

import (
	"regexp"
	"strings"
)

// Placeholder titles that PDF producers write into the Title property.
// A property title matching one of these is treated as absent.
var titlePlaceholders = map[string]bool{
	"untitled":       true,
	"microsoft word": true,
}

// creationYearPattern matches the year inside a PDF date string like
// "D:20200114093000Z".
var creationYearPattern = regexp.MustCompile(`D:(\d{4})`)

// listSepPattern splits author and keyword strings on ; or ,.
var listSepPattern = regexp.MustCompile(`[;,]`)

// Properties holds the cleaned scalar fields of a document property bag.
// Absent or rejected fields are zero-valued; lookup never fails.
type Properties struct {
	Title    string
	Authors  []string
	Year     string
	Keywords []string
	Subject  string
}

// NormalizeProperties cleans the raw property bag. Every field degrades to
// "not found" on absence or malformed content.
func NormalizeProperties(bag map[string]string) Properties {
	return Properties{
		Title:    normalizeTitle(bag["Title"]),
		Authors:  SplitList(bag["Author"]),
		Year:     creationYear(bag["CreationDate"]),
		Keywords: SplitList(bag["Keywords"]),
		Subject:  strings.TrimSpace(bag["Subject"]),
	}
}

// normalizeTitle returns the trimmed title, or "" when it is absent, too
// short to be meaningful, or a known producer placeholder.
func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return ""
	}
	if titlePlaceholders[strings.ToLower(title)] {
		return ""
	}
	return title
}

// SplitList splits a delimited property string on ; or , trimming each
// part and dropping empties.
func SplitList(s string) []string {
	var out []string
	for _, part := range listSepPattern.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// creationYear extracts the 4-digit year from a PDF creation date string.
func creationYear(date string) string {
	m := creationYearPattern.FindStringSubmatch(date)
	if m == nil {
		return ""
	}
	return m[1]
}
