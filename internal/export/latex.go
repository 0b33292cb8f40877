package export

import (
	"regexp"
	"strings"
)

// Placeholders park already-escaped sequences out of the way of the main
// escaping pass. NUL never appears in document text.
const (
	underscorePlaceholder = "\x00ESC-UNDERSCORE\x00"
	caretPlaceholder      = "\x00ESC-CARET\x00"
)

// latexEscaper escapes LaTeX special characters in a single pass, so its
// own replacement text is never re-escaped.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"#", `\#`,
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"|", `\textbar{}`,
)

var tokenPattern = regexp.MustCompile(`\S+`)

// EscapeTransform makes free text safe for inclusion in a LaTeX document
// body. Sequences the author already escaped (\_ and \^) pass through
// unchanged, and whitespace-delimited tokens containing a bare underscore
// or caret are wrapped in inline math so identifiers like file_name or
// x^2 render instead of breaking compilation.
func EscapeTransform(text string) string {
	// Ordering is load-bearing: placeholders must be parked before the
	// escaper runs (it would mangle the backslashes), and math wrapping
	// must run after escaping but before restoration so restored
	// sequences are not double-wrapped.
	text = strings.ReplaceAll(text, `\_`, underscorePlaceholder)
	text = strings.ReplaceAll(text, `\^`, caretPlaceholder)

	text = latexEscaper.Replace(text)

	text = tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if strings.ContainsAny(tok, "_^") {
			return "$" + tok + "$"
		}
		return tok
	})

	text = strings.ReplaceAll(text, underscorePlaceholder, `\_`)
	text = strings.ReplaceAll(text, caretPlaceholder, `\^`)
	return text
}
