package metadata

import "time"

// Document processing status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Document wraps a stored record with its file identity and processing
// status. The ID is the document's storage key.
type Document struct {
	ID       string    `json:"id"`
	FileName string    `json:"file_name"`
	FilePath string    `json:"file_path,omitempty"`
	Status   string    `json:"status"`
	AddedAt  time.Time `json:"added_at"`
	Record   Record    `json:"record"`
}
