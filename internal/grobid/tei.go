package grobid

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tkorva/papershelf/internal/sidecar"
)

// yearCandidatePattern finds 4-digit year tokens in TEI text nodes.
var yearCandidatePattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// teiDocument mirrors the parts of a GROBID header response we consume.
// Unqualified element names match regardless of the TEI namespace.
type teiDocument struct {
	XMLName xml.Name  `xml:"TEI"`
	Header  teiHeader `xml:"teiHeader"`
}

type teiHeader struct {
	FileDesc struct {
		TitleStmt struct {
			Title string `xml:"title"`
		} `xml:"titleStmt"`
		PublicationStmt struct {
			Dates []teiDate `xml:"date"`
		} `xml:"publicationStmt"`
		SourceDesc struct {
			BiblStruct struct {
				Analytic struct {
					Authors []teiAuthor `xml:"author"`
					IDNOs   []teiIDNO   `xml:"idno"`
				} `xml:"analytic"`
				Monogr struct {
					Title   string `xml:"title"`
					Imprint struct {
						Dates      []teiDate  `xml:"date"`
						BiblScopes []teiScope `xml:"biblScope"`
					} `xml:"imprint"`
				} `xml:"monogr"`
			} `xml:"biblStruct"`
		} `xml:"sourceDesc"`
	} `xml:"fileDesc"`
	ProfileDesc struct {
		Abstract struct {
			Text string `xml:",innerxml"`
		} `xml:"abstract"`
	} `xml:"profileDesc"`
}

type teiAuthor struct {
	PersName struct {
		Forenames []string `xml:"forename"`
		Surname   string   `xml:"surname"`
	} `xml:"persName"`
}

type teiDate struct {
	When string `xml:"when,attr"`
	Text string `xml:",chardata"`
}

type teiScope struct {
	Unit string `xml:"unit,attr"`
	From string `xml:"from,attr"`
	To   string `xml:"to,attr"`
	Text string `xml:",chardata"`
}

type teiIDNO struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// xmlTagPattern strips residual markup from innerxml abstract content.
var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// ParseHeader converts a GROBID TEI header response into a sidecar entry
// for the named file. Fields GROBID could not determine stay empty; the
// reconciler fills them from heuristics.
func ParseHeader(fileName string, teiXML []byte) (sidecar.Entry, error) {
	var doc teiDocument
	if err := xml.Unmarshal(teiXML, &doc); err != nil {
		return sidecar.Entry{}, fmt.Errorf("parsing TEI header: %w", err)
	}

	h := doc.Header
	entry := sidecar.Entry{
		FileName: fileName,
		Title:    strings.TrimSpace(h.FileDesc.TitleStmt.Title),
		Journal:  strings.TrimSpace(h.FileDesc.SourceDesc.BiblStruct.Monogr.Title),
		Abstract: cleanAbstract(h.ProfileDesc.Abstract.Text),
	}

	for _, a := range h.FileDesc.SourceDesc.BiblStruct.Analytic.Authors {
		name := authorName(a)
		if name != "" {
			entry.Authors = append(entry.Authors, name)
		}
	}

	for _, id := range h.FileDesc.SourceDesc.BiblStruct.Analytic.IDNOs {
		if strings.EqualFold(id.Type, "DOI") {
			entry.DOI = strings.TrimSpace(id.Text)
		}
	}

	imprint := h.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint
	for _, s := range imprint.BiblScopes {
		switch s.Unit {
		case "volume":
			entry.Volume = strings.TrimSpace(s.Text)
		case "issue":
			entry.Number = strings.TrimSpace(s.Text)
		case "page":
			entry.Pages = pageRange(s)
		}
	}

	if year := bestYear(h); year != 0 {
		entry.Year = sidecar.FlexibleString(strconv.Itoa(year))
	}

	return entry, nil
}

// authorName joins forenames and surname, dropping authors GROBID parsed
// without a usable name.
func authorName(a teiAuthor) string {
	parts := make([]string, 0, len(a.PersName.Forenames)+1)
	for _, f := range a.PersName.Forenames {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	if s := strings.TrimSpace(a.PersName.Surname); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func pageRange(s teiScope) string {
	if s.From != "" && s.To != "" {
		return s.From + "--" + s.To
	}
	if s.From != "" {
		return s.From
	}
	return strings.TrimSpace(s.Text)
}

func cleanAbstract(innerXML string) string {
	text := xmlTagPattern.ReplaceAllString(innerXML, " ")
	return strings.Join(strings.Fields(text), " ")
}

// bestYear picks the highest-scored plausible year from the header.
// Imprint dates outrank publication-statement dates, which outrank years
// scraped from biblScope text. Ties break toward the later year.
func bestYear(h teiHeader) int {
	type candidate struct {
		year  int
		score int
	}
	var cands []candidate

	add := func(year, score int) {
		if plausibleYear(year) {
			cands = append(cands, candidate{year, score})
		}
	}

	for _, d := range h.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.Dates {
		add(yearFromWhen(d.When), 100)
		for _, y := range yearsInText(d.Text) {
			add(y, 95)
		}
	}
	for _, d := range h.FileDesc.PublicationStmt.Dates {
		add(yearFromWhen(d.When), 90)
		for _, y := range yearsInText(d.Text) {
			add(y, 85)
		}
	}
	for _, s := range h.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.BiblScopes {
		for _, y := range yearsInText(s.Text) {
			add(y, 70)
		}
	}

	best := candidate{}
	for _, c := range cands {
		if c.score > best.score || (c.score == best.score && c.year > best.year) {
			best = c
		}
	}
	return best.year
}

// plausibleYear bounds accepted years to 1950 through next year.
func plausibleYear(year int) bool {
	return year >= 1950 && year <= time.Now().Year()+1
}

func yearFromWhen(when string) int {
	when = strings.TrimSpace(when)
	if len(when) < 4 {
		return 0
	}
	year, err := strconv.Atoi(when[:4])
	if err != nil {
		return 0
	}
	return year
}

func yearsInText(text string) []int {
	var years []int
	for _, m := range yearCandidatePattern.FindAllString(text, -1) {
		if y, err := strconv.Atoi(m); err == nil {
			years = append(years, y)
		}
	}
	return years
}
