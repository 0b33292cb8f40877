// Package bibtex synthesizes deterministic citation keys and flat
// bibliographic entries from metadata records.
package bibtex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tkorva/papershelf/internal/metadata"
)

// fourDigitYear matches a usable entry year; anything else (including the
// "Unknown" placeholder) is omitted from the rendered entry.
var fourDigitYear = regexp.MustCompile(`^\d{4}$`)

// keyTokenPattern strips everything but lowercase alphanumerics.
var keyTokenPattern = regexp.MustCompile(`[^a-z0-9]+`)

// entryStartPattern matches an entry opener: @type{key,
var entryStartPattern = regexp.MustCompile(`@\w+\{([^,]+),`)

// diacriticFolder maps common Latin diacritics to ASCII so that citation
// keys stay stable across accented and plain spellings.
var diacriticFolder = strings.NewReplacer(
	"ä", "a", "á", "a", "à", "a", "â", "a", "ã", "a",
	"ö", "o", "ó", "o", "ò", "o", "ô", "o", "õ", "o",
	"ü", "u", "ú", "u", "ù", "u", "û", "u",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"ç", "c", "ñ", "n", "ß", "ss",
	"ğ", "g", "ı", "i", "ş", "s",
)

// escaper escapes BibTeX special characters in field values. Replacement
// happens in a single pass, so escapes are never themselves re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	"{", `\{`,
	"}", `\}`,
	"%", `\%`,
	"$", `\$`,
	"&", `\&`,
	"#", `\#`,
	"_", `\_`,
	"~", `\~{}`,
	"^", `\^{}`,
)

// Synthesize derives the citation key and flat bibliographic entry for a
// record. It is pure: identical inputs always yield identical output. Key
// uniqueness across a batch is not enforced; collisions are left to the
// consumer.
func Synthesize(rec metadata.Record, fileName, filePath string) (key, entry string) {
	key = synthesizeKey(rec)
	entry = renderEntry(key, rec, fileName, filePath)
	return key, entry
}

// KeyOf extracts the citation key from a rendered entry's opener line.
// Returns "" when the text does not start a recognizable entry.
func KeyOf(entry string) string {
	m := entryStartPattern.FindStringSubmatch(entry)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// synthesizeKey composes lastname + year + title word, each component
// falling back to a fixed token when it cannot be derived.
func synthesizeKey(rec metadata.Record) string {
	name := "anon"
	if len(rec.Authors) > 0 {
		if t := keyToken(lastName(rec.Authors[0])); t != "" {
			name = t
		}
	}

	year := "0000"
	if fourDigitYear.MatchString(strings.TrimSpace(rec.Year)) {
		year = strings.TrimSpace(rec.Year)
	}

	word := "entry"
	for _, w := range strings.Fields(rec.Title) {
		if t := keyToken(w); len(t) > 3 {
			word = t
			break
		}
	}

	return name + year + word
}

// lastName extracts the surname token from an author display string,
// handling both "Surname, Given" and "Given Surname" forms.
func lastName(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return ""
	}
	if before, _, ok := strings.Cut(author, ","); ok {
		return before
	}
	parts := strings.Fields(author)
	return parts[len(parts)-1]
}

// keyToken lowercases, folds diacritics, and strips non-alphanumerics.
func keyToken(s string) string {
	s = diacriticFolder.Replace(strings.ToLower(s))
	return keyTokenPattern.ReplaceAllString(s, "")
}

// renderEntry writes the flat entry with its fixed field order. Fields are
// emitted only when non-empty.
func renderEntry(key string, rec metadata.Record, fileName, filePath string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("@misc{%s,\n", key))

	writeField(&b, "author", strings.Join(rec.Authors, " and "))
	writeField(&b, "title", rec.Title)
	if fourDigitYear.MatchString(strings.TrimSpace(rec.Year)) {
		writeField(&b, "year", strings.TrimSpace(rec.Year))
	}
	writeField(&b, "journal", rec.Journal)
	writeField(&b, "volume", rec.Volume)
	writeField(&b, "number", rec.Number)
	writeField(&b, "pages", rec.Pages)
	writeField(&b, "doi", rec.DOI)
	writeField(&b, "url", rec.URL)
	writeField(&b, "howpublished", "PDF")
	if fileName != "" {
		writeField(&b, "note", "Local PDF: "+fileName)
	}
	if filePath != "" {
		writeField(&b, "file", filePath)
	} else {
		writeField(&b, "file", fileName)
	}

	b.WriteString("}\n")
	return b.String()
}

// writeField appends one "  name = {value}," line, escaping the value.
func writeField(b *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, escaper.Replace(value)))
}
