// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/healthtab/pkg/types"
)

// ExportParser reads the native export.xml document (R1). The decoder
// walks tokens one element at a time, so a multi-hundred-megabyte export
// is never held as a single tree; only the decoded records accumulate.
type ExportParser struct {
	// IncludeWorkouts also decodes Workout elements (R1.4).
	IncludeWorkouts bool
}

// recordElement maps the attributes of a Record element (R1.2). Absent
// attributes decode to the empty string, the same value an empty
// attribute carries.
type recordElement struct {
	Type      string `xml:"type,attr"`
	StartDate string `xml:"startDate,attr"`
	EndDate   string `xml:"endDate,attr"`
	Value     string `xml:"value,attr"`
}

// workoutElement maps the attributes of a Workout element (R1.4).
type workoutElement struct {
	ActivityType          string `xml:"workoutActivityType,attr"`
	StartDate             string `xml:"startDate,attr"`
	EndDate               string `xml:"endDate,attr"`
	Duration              string `xml:"duration,attr"`
	DurationUnit          string `xml:"durationUnit,attr"`
	TotalEnergyBurned     string `xml:"totalEnergyBurned,attr"`
	TotalEnergyBurnedUnit string `xml:"totalEnergyBurnedUnit,attr"`
}

// Parse reads the export document at path and returns its records in
// document order. Record elements nested inside Correlation blocks are
// decoded like top-level ones (R1.2); the Health app emits correlated
// samples that way, such as the two readings of a blood pressure pair.
func (p *ExportParser) Parse(path string, w io.Writer) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []types.Record
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "Record":
			var re recordElement
			if err := dec.DecodeElement(&re, &se); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
			}
			records = append(records, types.Record{
				Type:      re.Type,
				StartDate: re.StartDate,
				EndDate:   re.EndDate,
				Value:     re.Value,
			})
		case "Workout":
			if !p.IncludeWorkouts {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
				}
				continue
			}
			var we workoutElement
			if err := dec.DecodeElement(&we, &se); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
			}
			records = append(records, types.Record{
				Type:      we.ActivityType,
				StartDate: we.StartDate,
				EndDate:   we.EndDate,
				Value:     workoutValue(we),
				Workout:   true,
			})
		}
	}
	return records, nil
}

// workoutValue composes the value payload of a workout record:
// "duration:<d> <unit>; calories:<e> <unit>", dropping whichever part the
// element does not carry. Units default to min and Cal, the units the
// Health app writes (prd003 R4.2).
func workoutValue(we workoutElement) string {
	var parts []string
	if we.Duration != "" {
		unit := we.DurationUnit
		if unit == "" {
			unit = "min"
		}
		parts = append(parts, "duration:"+we.Duration+" "+unit)
	}
	if we.TotalEnergyBurned != "" {
		unit := we.TotalEnergyBurnedUnit
		if unit == "" {
			unit = "Cal"
		}
		parts = append(parts, "calories:"+we.TotalEnergyBurned+" "+unit)
	}
	return strings.Join(parts, "; ")
}
