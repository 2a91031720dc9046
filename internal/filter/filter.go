// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter selects which record types survive extraction.
// Implements: prd002-selection (R1-R4);
//
//	docs/ARCHITECTURE § Selection.
package filter

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/healthtab/internal/parse"
	"github.com/pdiddy/healthtab/pkg/types"
)

// DefaultTargets lists the identifiers extracted when no custom set is
// given (R1.1): nine quantity types and two category types covering the
// metrics a Watch wearer accumulates daily.
var DefaultTargets = []string{
	"HKQuantityTypeIdentifierStepCount",
	"HKQuantityTypeIdentifierActiveEnergyBurned",
	"HKQuantityTypeIdentifierHeartRate",
	"HKQuantityTypeIdentifierRestingHeartRate",
	"HKQuantityTypeIdentifierHeartRateVariabilitySDNN",
	"HKQuantityTypeIdentifierBodyMass",
	"HKQuantityTypeIdentifierBodyFatPercentage",
	"HKQuantityTypeIdentifierVO2Max",
	"HKQuantityTypeIdentifierRespiratoryRate",
	"HKCategoryTypeIdentifierSleepAnalysis",
	"HKCategoryTypeIdentifierAppleStandHour",
}

// Set is a selection of record type identifiers. The zero value selects
// nothing; membership is exact string match (R2.1).
type Set map[string]struct{}

// NewSet builds a Set from identifiers, ignoring empty strings.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// DefaultFor returns the default selection for a source format (R1.2).
// An ECG directory carries only electrocardiogram recordings, so its
// default set holds just that identifier.
func DefaultFor(format types.SourceFormat) Set {
	if format == types.FormatECG {
		return NewSet(parse.ECGRecordType)
	}
	return NewSet(DefaultTargets...)
}

// Contains reports whether id belongs to the selection (R2.1).
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the selection in lexical order for display (R4.1).
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply keeps the records whose type belongs to the selection, in their
// original order (R2.2). Workout records bypass the set: the caller
// opted into them explicitly, and workout activity identifiers are not
// HK record types (R2.4).
func Apply(records []types.Record, s Set) []types.Record {
	kept := make([]types.Record, 0, len(records))
	for _, rec := range records {
		if rec.Workout || s.Contains(rec.Type) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// typesFile mirrors the YAML layout of a custom selection file (R3.1):
//
//	types:
//	  - HKQuantityTypeIdentifierStepCount
//	  - HKQuantityTypeIdentifierHeartRate
type typesFile struct {
	Types []string `yaml:"types"`
}

// LoadSet reads a custom selection from a YAML file. The file replaces
// the default set entirely rather than extending it (R3.1); an
// unreadable or empty file is an error the caller surfaces before any
// parsing starts (R3.2).
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading types file: %w", err)
	}

	var tf typesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing types file %s: %w", path, err)
	}
	if len(tf.Types) == 0 {
		return nil, fmt.Errorf("types file %s lists no types", path)
	}
	return NewSet(tf.Types...), nil
}
