// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCDAXML = `<?xml version="1.0" encoding="UTF-8"?>
<ClinicalDocument xmlns="urn:hl7-org:v3">
 <entry>
  <organizer>
   <component>
    <observation>
     <text>
      <type>HKQuantityTypeIdentifierHeartRate</type>
      <unit>count/min</unit>
      <value>61</value>
     </text>
     <effectiveTime>
      <low value="20260701081500-0700"/>
      <high value="20260701081500-0700"/>
     </effectiveTime>
    </observation>
   </component>
   <component>
    <observation>
     <text>
      <type>HKQuantityTypeIdentifierBodyMass</type>
      <unit>lb</unit>
      <value>171.2</value>
     </text>
     <effectiveTime>
      <low value="20260702070000-0700"/>
      <high value="20260702070000-0700"/>
     </effectiveTime>
    </observation>
   </component>
  </organizer>
 </entry>
</ClinicalDocument>
`

func TestCDAParserParse(t *testing.T) {
	path := writeSample(t, "export_cda.xml", sampleCDAXML)

	var buf bytes.Buffer
	p := &CDAParser{}
	records, err := p.Parse(path, &buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Type != "HKQuantityTypeIdentifierHeartRate" {
		t.Errorf("unexpected type %q", first.Type)
	}
	if first.StartDate != "2026-07-01 08:15:00 -0700" {
		t.Errorf("expected reformatted start date, got %q", first.StartDate)
	}
	if first.Value != "61" {
		t.Errorf("unexpected value %q", first.Value)
	}

	if records[1].Type != "HKQuantityTypeIdentifierBodyMass" {
		t.Errorf("unexpected second type %q", records[1].Type)
	}
	if records[1].Value != "171.2" {
		t.Errorf("unexpected second value %q", records[1].Value)
	}
}

func TestCDAParserPartial(t *testing.T) {
	// Truncate the document inside the second observation, the way
	// Apple's exporter cuts off large CDA files.
	cut := strings.Index(sampleCDAXML, "HKQuantityTypeIdentifierBodyMass")
	if cut < 0 {
		t.Fatal("sample document changed, marker not found")
	}
	path := writeSample(t, "export_cda.xml", sampleCDAXML[:cut])

	var buf bytes.Buffer
	p := &CDAParser{}
	records, err := p.Parse(path, &buf)
	if err != nil {
		t.Fatalf("expected the partial set to survive, got error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record from the partial document, got %d", len(records))
	}
	if records[0].Type != "HKQuantityTypeIdentifierHeartRate" {
		t.Errorf("unexpected type %q", records[0].Type)
	}
	if !strings.Contains(buf.String(), "keeping the partial set") {
		t.Errorf("expected a truncation warning, got %q", buf.String())
	}
}

func TestCDAParserMalformed(t *testing.T) {
	path := writeSample(t, "export_cda.xml", `<ClinicalDocument><entry><observation>`)

	var buf bytes.Buffer
	p := &CDAParser{}
	_, err := p.Parse(path, &buf)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestCDAParserSourceNotFound(t *testing.T) {
	var buf bytes.Buffer
	p := &CDAParser{}
	_, err := p.Parse(filepath.Join(t.TempDir(), "missing.xml"), &buf)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestFormatCDADate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "timestamp with zone",
			in:   "20260701081500-0700",
			want: "2026-07-01 08:15:00 -0700",
		},
		{
			name: "timestamp without zone",
			in:   "20260701081500",
			want: "2026-07-01 08:15:00",
		},
		{
			name: "too short passes through",
			in:   "20260701",
			want: "20260701",
		},
		{
			name: "unparsable passes through",
			in:   "2026070108150x-0700",
			want: "2026070108150x-0700",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCDADate(tt.in); got != tt.want {
				t.Errorf("formatCDADate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
