package metadata

import "time"

// NoteType classifies what a note is attached to.
type NoteType string

const (
	NoteGeneral  NoteType = "general"
	NoteCategory NoteType = "category"
	NoteArticle  NoteType = "article"
)

// ValidNoteType reports whether t is one of the known note types.
func ValidNoteType(t NoteType) bool {
	switch t {
	case NoteGeneral, NoteCategory, NoteArticle:
		return true
	}
	return false
}

// Note is a free-text annotation. TargetID holds the category name for
// category notes and the document ID for article notes; it is empty for
// general notes.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      NoteType  `json:"type"`
	TargetID  string    `json:"target_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
