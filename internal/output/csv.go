// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes rows into the delimited table and the
// optional run report.
// Implements: prd004-output (R1-R4);
//
//	docs/ARCHITECTURE § Output.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/healthtab/pkg/types"
)

// ErrNotWritable marks an output destination that cannot be created or
// flushed (E3, R3.1). Fatal; the CLI names the destination in its
// message.
var ErrNotWritable = errors.New("output not writable")

// Header lists the output columns in order (R1.1).
var Header = []string{"type", "startDate", "endDate", "value"}

// WriteCSV writes the rows as a delimited table at path, overwriting an
// existing file without prompting (R1.5). Zero rows still produce the
// header line (R1.4). Fields containing the delimiter, quotes, or
// newlines are quoted per RFC 4180 (R1.3). A zero delimiter means the
// default comma.
func WriteCSV(path string, rows []types.Row, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if delimiter != 0 {
		w.Comma = delimiter
	}

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, path, err)
	}
	for _, row := range rows {
		record := []string{row.Type, row.StartDate, row.EndDate, row.Value}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNotWritable, path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, path, err)
	}
	return nil
}
