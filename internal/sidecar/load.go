package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseError reports a sidecar source that is not well-formed. The caller
// skips the offending source with a warning; other sources still apply.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing sidecar file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// fileEnvelope matches the object form of a sidecar file. The original
// pipeline writes {"pdfs": [...]} from parsing and {"entries": [...]}
// from reference generation; a bare JSON array is also accepted.
type fileEnvelope struct {
	PDFs    []Entry `json:"pdfs"`
	Entries []Entry `json:"entries"`
}

// Load reads one sidecar file. Malformed files return a *ParseError.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes sidecar JSON in any of its accepted shapes.
func Parse(path string, data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if env.PDFs != nil {
		return env.PDFs, nil
	}
	return env.Entries, nil
}

// LoadAll reads several sidecar files in order, collecting entries from
// the well-formed ones and a *ParseError for each malformed one.
func LoadAll(paths []string) ([]Entry, []error) {
	var entries []Entry
	var errs []error
	for _, path := range paths {
		loaded, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, loaded...)
	}
	return entries, errs
}
