// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse reads Apple Health export sources into raw records.
// Implements: prd001-parsing (R1-R5);
//
//	docs/ARCHITECTURE § Parsing.
package parse

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/healthtab/pkg/types"
)

// Fatal parse categories (R4.1, R4.2). Every fatal error returned by a
// parser wraps one of these so callers can distinguish them with errors.Is.
var (
	// ErrSourceNotFound marks a missing input path or ECG directory (E1).
	ErrSourceNotFound = errors.New("source not found")

	// ErrMalformed marks a source document that cannot be parsed (E2).
	ErrMalformed = errors.New("malformed source document")
)

// Parser reads one source into raw records in document order. Each source
// format (export, cda, ecg) implements this interface. Warnings and status
// lines go to w.
type Parser interface {
	Parse(path string, w io.Writer) ([]types.Record, error)
}

// New returns the parser backend for the given format (R5.1). An empty
// format selects the export backend.
func New(format types.SourceFormat, includeWorkouts bool) (Parser, error) {
	switch format {
	case types.FormatExport, "":
		return &ExportParser{IncludeWorkouts: includeWorkouts}, nil
	case types.FormatCDA:
		return &CDAParser{}, nil
	case types.FormatECG:
		return &ECGParser{}, nil
	default:
		return nil, fmt.Errorf("unknown source format %q: use export, cda, or ecg", format)
	}
}
