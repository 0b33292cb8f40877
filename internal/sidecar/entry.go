// Package sidecar loads externally supplied metadata records and
// reconciles them with heuristic extraction.
package sidecar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString can unmarshal from string, number, or null JSON values.
// Sidecar producers disagree on whether the year is a string or an int.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexibleString(strconv.Itoa(i))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Entry is one sidecar metadata record, matched to a document by exact
// file name. Any subset of fields may be present; Info carries the raw
// property sub-object with keys like "/Title".
type Entry struct {
	FileName string         `json:"file_name"`
	FilePath string         `json:"file_path,omitempty"`
	Title    string         `json:"title,omitempty"`
	Authors  []string       `json:"authors,omitempty"`
	Year     FlexibleString `json:"year,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`

	Journal string `json:"journal,omitempty"`
	Volume  string `json:"volume,omitempty"`
	Number  string `json:"number,omitempty"`
	Pages   string `json:"pages,omitempty"`
	DOI     string `json:"doi,omitempty"`
	URL     string `json:"url,omitempty"`

	Info map[string]string `json:"info,omitempty"`
}

// infoValue looks up a raw-property key, tolerating both "/Title" and
// "Title" spellings.
func (e Entry) infoValue(key string) string {
	if v, ok := e.Info["/"+key]; ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(e.Info[key])
}
