package extract

import "fmt"

// ExtractionError reports that a document's text or property source could
// not be read at all. Field-level heuristic failures never produce this;
// they degrade to defaults instead.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting metadata from %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
