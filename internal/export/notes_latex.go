package export

import (
	"fmt"
	"strings"
)

// renderLaTeXNotes writes the LaTeX notes fragment and the matching
// cited.bib body. The fragment is meant for \input into a surrounding
// document; it closes with \nocite entries and the bibliography hooks so
// every referenced article appears in the rendered reference list.
func renderLaTeXNotes(sel Selection) (main, cited string) {
	var b strings.Builder

	if len(sel.General) > 0 {
		fmt.Fprintf(&b, "\\section{%s}\n\n", EscapeTransform("General Notes"))
		for _, n := range sel.General {
			fmt.Fprintf(&b, "\\subsection{%s}\n\n", EscapeTransform(n.Title))
			writeLaTeXBody(&b, n.Content)
		}
	}

	if len(sel.Category) > 0 {
		fmt.Fprintf(&b, "\\section{%s}\n\n", EscapeTransform("Category Notes"))
		for _, name := range categoryNames(sel) {
			fmt.Fprintf(&b, "\\subsection{%s}\n\n", EscapeTransform(name))
			for _, n := range sel.Category[name] {
				fmt.Fprintf(&b, "\\subsubsection{%s}\n\n", EscapeTransform(n.Title))
				writeLaTeXBody(&b, n.Content)
			}
		}
	}

	var keys, entries []string
	if len(sel.Articles) > 0 {
		fmt.Fprintf(&b, "\\section{%s}\n\n", EscapeTransform("Article Notes"))
		for _, a := range sel.Articles {
			fmt.Fprintf(&b, "\\subsection{%s}\n\n", EscapeTransform(a.Doc.Record.Title))
			fmt.Fprintf(&b, "\\subsubsection{%s}\n\n", EscapeTransform(a.Note.Title))
			fmt.Fprintf(&b, "This subsection belongs to `%s`.\n\n", EscapeTransform(a.Doc.Record.Title))
			writeLaTeXBody(&b, a.Note.Content)
		}

		keys, entries = citedEntries(sel.Articles)
		for _, key := range keys {
			fmt.Fprintf(&b, "\\nocite{%s}\n", key)
		}
		b.WriteString("\\bibliographystyle{plain}\n")
		b.WriteString("\\bibliography{references}\n")
	}

	return b.String(), References(entries)
}

func writeLaTeXBody(b *strings.Builder, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	b.WriteString(EscapeTransform(content))
	b.WriteString("\n\n")
}
