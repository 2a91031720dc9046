// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/pdiddy/healthtab/pkg/types"
)

// CDAParser reads the HL7 CDA variant export_cda.xml (R2). Apple's CDA
// emitter truncates large documents mid-element, so a decode failure
// after at least one observation keeps the partial set and prints a
// warning instead of aborting (R2.4).
type CDAParser struct{}

// cdaObservation maps the subset of an observation element the converter
// needs: Apple's text extension block plus the effective time range (R2.2).
type cdaObservation struct {
	Text struct {
		Type  string `xml:"type"`
		Value string `xml:"value"`
	} `xml:"text"`
	EffectiveTime struct {
		Low struct {
			Value string `xml:"value,attr"`
		} `xml:"low"`
		High struct {
			Value string `xml:"value,attr"`
		} `xml:"high"`
	} `xml:"effectiveTime"`
}

// Parse reads the CDA document at path and returns its observations as
// records in document order.
func (p *CDAParser) Parse(path string, w io.Writer) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := decodeCDA(f)
	if err != nil {
		if len(records) > 0 {
			fmt.Fprintf(w, "warning: %s is malformed after %d observations, keeping the partial set: %v\n",
				path, len(records), err)
			return records, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return records, nil
}

// decodeCDA walks the token stream and decodes every observation element.
// On a decode error it returns the observations read so far alongside the
// error; Parse decides whether the partial set survives.
func decodeCDA(r io.Reader) ([]types.Record, error) {
	var records []types.Record
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "observation" {
			continue
		}

		var obs cdaObservation
		if err := dec.DecodeElement(&obs, &se); err != nil {
			return records, err
		}
		if obs.Text.Type == "" {
			// Observation without Apple's text block: not a sample.
			continue
		}
		records = append(records, types.Record{
			Type:      obs.Text.Type,
			StartDate: formatCDADate(obs.EffectiveTime.Low.Value),
			EndDate:   formatCDADate(obs.EffectiveTime.High.Value),
			Value:     obs.Text.Value,
		})
	}
}

// cdaTimeLayout is the compact timestamp base CDA documents use (R2.3).
const cdaTimeLayout = "20060102150405"

// formatCDADate rewrites a CDA timestamp (YYYYMMDDHHMMSS±ZZZZ) into the
// export.xml form "YYYY-MM-DD HH:MM:SS ±ZZZZ" so both backends emit the
// same date shape. A value that does not parse passes through verbatim
// (R2.3).
func formatCDADate(s string) string {
	if len(s) < len(cdaTimeLayout) {
		return s
	}
	t, err := time.Parse(cdaTimeLayout, s[:len(cdaTimeLayout)])
	if err != nil {
		return s
	}
	out := t.Format("2006-01-02 15:04:05")
	if tz := s[len(cdaTimeLayout):]; tz != "" {
		out += " " + tz
	}
	return out
}
