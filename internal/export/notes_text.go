package export

import (
	"fmt"
	"strings"
)

// renderTextNotes writes the plain-text notes document with #-style
// headings at three levels: section, group, note.
func renderTextNotes(sel Selection) string {
	var b strings.Builder

	if len(sel.General) > 0 {
		writeTextHeading(&b, 1, "General Notes")
		for _, n := range sel.General {
			writeTextHeading(&b, 2, n.Title)
			writeTextBody(&b, n.Content)
		}
	}

	if len(sel.Category) > 0 {
		writeTextHeading(&b, 1, "Category Notes")
		for _, name := range categoryNames(sel) {
			writeTextHeading(&b, 2, name)
			for _, n := range sel.Category[name] {
				writeTextHeading(&b, 3, n.Title)
				writeTextBody(&b, n.Content)
			}
		}
	}

	if len(sel.Articles) > 0 {
		writeTextHeading(&b, 1, "Article Notes")
		for _, a := range sel.Articles {
			writeTextHeading(&b, 2, a.Doc.Record.Title)
			writeTextHeading(&b, 3, a.Note.Title)
			fmt.Fprintf(&b, "This subsection belongs to `%s`.\n\n", a.Doc.Record.Title)
			writeTextBody(&b, a.Note.Content)
		}
	}

	return b.String()
}

func writeTextHeading(b *strings.Builder, level int, title string) {
	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), title)
}

func writeTextBody(b *strings.Builder, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	b.WriteString(content)
	b.WriteString("\n\n")
}
