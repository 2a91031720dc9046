// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one-shot conversions from a source to the table.
// Implements: prd005-run (R1-R3);
//
//	docs/ARCHITECTURE § Run Pipeline.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/healthtab/internal/dedup"
	"github.com/pdiddy/healthtab/internal/filter"
	"github.com/pdiddy/healthtab/internal/normalize"
	"github.com/pdiddy/healthtab/internal/output"
	"github.com/pdiddy/healthtab/internal/parse"
	"github.com/pdiddy/healthtab/pkg/types"
)

// progressEvery is the extraction interval between progress lines (R1.2).
const progressEvery = 50000

// Summary aggregates the counters of one conversion run (R1.3).
type Summary struct {
	// Parsed counts the raw records the source yielded.
	Parsed int
	// Matched counts the records that passed the selection.
	Matched int
	// Rows counts the rows written to the table.
	Rows int
	// Skipped counts records dropped for missing attributes.
	Skipped int
	// Duplicates counts rows removed by deduplication.
	Duplicates int
	// ByType counts written rows per record type.
	ByType map[string]int
}

// HasSkips reports whether any selected record failed normalization.
func (s Summary) HasSkips() bool { return s.Skipped > 0 }

// Run executes one conversion: parse, filter, normalize, then the
// optional dedupe and sort passes, then the table write (R1.1). Status
// and warning lines go to w. Fatal errors wrap one of the parse or
// output categories.
func Run(cfg types.ConvertConfig, w io.Writer) (Summary, error) {
	var sum Summary

	active, err := activeSet(cfg)
	if err != nil {
		return sum, err
	}

	p, err := parse.New(cfg.Format, cfg.IncludeWorkouts)
	if err != nil {
		return sum, err
	}

	fmt.Fprintf(w, "converting %s (%s format)\n", cfg.InputPath, formatName(cfg.Format))
	records, err := p.Parse(cfg.InputPath, w)
	if err != nil {
		return sum, err
	}
	sum.Parsed = len(records)

	matched := filter.Apply(records, active)
	sum.Matched = len(matched)

	rows := make([]types.Row, 0, len(matched))
	for _, rec := range matched {
		row, err := normalize.Normalize(rec)
		if err != nil {
			if errors.Is(err, normalize.ErrMissingAttribute) {
				sum.Skipped++
				continue
			}
			return sum, err
		}
		rows = append(rows, row)
		if len(rows)%progressEvery == 0 {
			fmt.Fprintf(w, "progress: %d records extracted\n", len(rows))
		}
	}

	if cfg.Dedupe {
		rows, sum.Duplicates = dedup.Rows(rows)
	}
	if cfg.SortByStart {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].StartDate < rows[j].StartDate
		})
	}

	if err := output.WriteCSV(cfg.OutputPath, rows, cfg.Delimiter); err != nil {
		return sum, err
	}
	sum.Rows = len(rows)

	sum.ByType = make(map[string]int, len(active))
	for _, row := range rows {
		sum.ByType[row.Type]++
	}

	printSummary(w, sum)
	fmt.Fprintf(w, "wrote %d rows to %s\n", sum.Rows, cfg.OutputPath)

	if cfg.ReportPath != "" {
		if err := writeReport(cfg, sum); err != nil {
			return sum, err
		}
		fmt.Fprintf(w, "run report written to %s\n", cfg.ReportPath)
	}
	return sum, nil
}

// activeSet resolves the selection for this run: explicit target types
// when given, otherwise the per-format default (prd002 R1, R3).
func activeSet(cfg types.ConvertConfig) (filter.Set, error) {
	if len(cfg.TargetTypes) > 0 {
		return filter.NewSet(cfg.TargetTypes...), nil
	}
	return filter.DefaultFor(cfg.Format), nil
}

// formatName renders the source format for display; an empty format is
// the export default.
func formatName(f types.SourceFormat) string {
	if f == "" {
		return string(types.FormatExport)
	}
	return string(f)
}

// printSummary writes the end-of-run counter block (R1.3).
func printSummary(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "\nConversion summary:\n")
	fmt.Fprintf(w, "  parsed:  %d\n", sum.Parsed)
	fmt.Fprintf(w, "  matched: %d\n", sum.Matched)
	fmt.Fprintf(w, "  skipped: %d\n", sum.Skipped)
	if sum.Duplicates > 0 {
		fmt.Fprintf(w, "  duplicates removed: %d\n", sum.Duplicates)
	}
	if len(sum.ByType) == 0 {
		return
	}
	fmt.Fprintf(w, "Rows by type:\n")
	ids := make([]string, 0, len(sum.ByType))
	for id := range sum.ByType {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  %s: %d\n", id, sum.ByType[id])
	}
}

// writeReport emits the optional YAML run report after a successful
// table write (prd004 R4).
func writeReport(cfg types.ConvertConfig, sum Summary) error {
	return output.WriteReport(cfg.ReportPath, output.Report{
		Input:       cfg.InputPath,
		Output:      cfg.OutputPath,
		Format:      formatName(cfg.Format),
		GeneratedAt: time.Now().UTC(),
		Rows:        sum.Rows,
		Parsed:      sum.Parsed,
		Matched:     sum.Matched,
		Skipped:     sum.Skipped,
		Duplicates:  sum.Duplicates,
		RowsByType:  sum.ByType,
	})
}
