package grobid

import (
	"testing"
)

const sampleTEI = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title level="a" type="main">Deep Parsing Models</title>
      </titleStmt>
      <publicationStmt>
        <date type="published" when="2021-03-15">15 March 2021</date>
      </publicationStmt>
      <sourceDesc>
        <biblStruct>
          <analytic>
            <author>
              <persName><forename type="first">Jane</forename><surname>Smith</surname></persName>
            </author>
            <author>
              <persName><forename type="first">John</forename><forename type="middle">Q</forename><surname>Doe</surname></persName>
            </author>
            <idno type="DOI">10.1000/xyz</idno>
          </analytic>
          <monogr>
            <title level="j">Journal of Parsing</title>
            <imprint>
              <biblScope unit="volume">12</biblScope>
              <biblScope unit="issue">3</biblScope>
              <biblScope unit="page" from="100" to="121"/>
              <date type="published" when="2020-11-01"/>
            </imprint>
          </monogr>
        </biblStruct>
      </sourceDesc>
    </fileDesc>
    <profileDesc>
      <abstract><div><p>We parse <hi rend="italic">things</hi> carefully.</p></div></abstract>
    </profileDesc>
  </teiHeader>
</TEI>`

func TestParseHeader(t *testing.T) {
	entry, err := ParseHeader("smith_2020.pdf", []byte(sampleTEI))
	if err != nil {
		t.Fatalf("ParseHeader() error: %v", err)
	}

	if entry.FileName != "smith_2020.pdf" {
		t.Errorf("FileName = %q", entry.FileName)
	}
	if entry.Title != "Deep Parsing Models" {
		t.Errorf("Title = %q", entry.Title)
	}
	if len(entry.Authors) != 2 || entry.Authors[0] != "Jane Smith" || entry.Authors[1] != "John Q Doe" {
		t.Errorf("Authors = %v", entry.Authors)
	}
	if entry.Journal != "Journal of Parsing" {
		t.Errorf("Journal = %q", entry.Journal)
	}
	if entry.Volume != "12" || entry.Number != "3" {
		t.Errorf("Volume/Number = %q/%q", entry.Volume, entry.Number)
	}
	if entry.Pages != "100--121" {
		t.Errorf("Pages = %q", entry.Pages)
	}
	if entry.DOI != "10.1000/xyz" {
		t.Errorf("DOI = %q", entry.DOI)
	}
	if entry.Abstract != "We parse things carefully." {
		t.Errorf("Abstract = %q", entry.Abstract)
	}
	// The imprint date outranks the publication statement.
	if entry.Year.String() != "2020" {
		t.Errorf("Year = %q, want 2020", entry.Year)
	}
}

func TestParseHeader_Malformed(t *testing.T) {
	if _, err := ParseHeader("x.pdf", []byte("<TEI><broken")); err == nil {
		t.Error("ParseHeader() should fail on malformed XML")
	}
}

func TestParseHeader_EmptyHeader(t *testing.T) {
	entry, err := ParseHeader("x.pdf", []byte(`<TEI><teiHeader/></TEI>`))
	if err != nil {
		t.Fatalf("ParseHeader() error: %v", err)
	}
	if entry.Title != "" || len(entry.Authors) != 0 || entry.Year.String() != "" {
		t.Errorf("empty header should yield empty fields, got %+v", entry)
	}
}

func TestBestYear_ScoresAndTies(t *testing.T) {
	var h teiHeader

	h.FileDesc.PublicationStmt.Dates = []teiDate{{When: "2019-01-01"}}
	h.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.Dates = []teiDate{{Text: "published in 2018"}}

	// Imprint text (95) outranks publication when-attribute (90).
	if got := bestYear(h); got != 2018 {
		t.Errorf("bestYear = %d, want the imprint year 2018", got)
	}

	h.FileDesc.SourceDesc.BiblStruct.Monogr.Imprint.Dates = []teiDate{
		{Text: "2016, reprinted 2017"},
	}
	if got := bestYear(h); got != 2017 {
		t.Errorf("bestYear = %d, equal scores should break toward the later year", got)
	}
}

func TestPlausibleYear(t *testing.T) {
	if plausibleYear(1949) {
		t.Error("1949 should be rejected")
	}
	if !plausibleYear(1950) {
		t.Error("1950 should be accepted")
	}
	if plausibleYear(2990) {
		t.Error("far-future years should be rejected")
	}
}

func TestYearFromWhen(t *testing.T) {
	tests := []struct {
		when string
		want int
	}{
		{"2020-11-01", 2020},
		{"2020", 2020},
		{"20", 0},
		{"abcd-01-01", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := yearFromWhen(tt.when); got != tt.want {
			t.Errorf("yearFromWhen(%q) = %d, want %d", tt.when, got, tt.want)
		}
	}
}
