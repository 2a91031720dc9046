// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/healthtab/internal/filter"
	"github.com/pdiddy/healthtab/internal/pipeline"
	"github.com/pdiddy/healthtab/pkg/types"
)

const (
	defaultInput     = "export.xml"
	defaultECGInput  = "electrocardiograms"
	defaultOutput    = "health_data.csv"
	defaultDelimiter = ","
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one Apple Health source to a delimited table",
	Long: `Convert reads one exported source (export.xml, the CDA variant, or an
electrocardiogram directory), keeps the records whose type belongs to the
active selection, and writes them as a delimited table with one row per
record: type, startDate, endDate, value.

Optional passes deduplicate repeated rows and sort by start date; both are
off by default so the table mirrors the source document.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("input", "", "source path (default export.xml, or electrocardiograms/ for --format ecg)")
	convertCmd.Flags().String("output", defaultOutput, "destination table path")
	convertCmd.Flags().String("format", "export", "source format: export, cda, or ecg")
	convertCmd.Flags().String("types-file", "", "YAML file with a custom record type selection")
	convertCmd.Flags().String("delimiter", defaultDelimiter, `output field delimiter (single character; \t for tab)`)
	convertCmd.Flags().Bool("workouts", false, "also extract Workout elements (export format only)")
	convertCmd.Flags().Bool("dedupe", false, "drop rows whose type, dates, and value repeat an earlier row")
	convertCmd.Flags().Bool("sort", false, "sort rows by start date (stable)")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd)
	if err != nil {
		return err
	}

	sum, err := pipeline.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if sum.HasSkips() {
		fmt.Fprintf(os.Stderr, "skipped %d record(s) with missing attributes\n", sum.Skipped)
	}
	return nil
}

// convertConfig assembles the run configuration from flags, falling back
// to healthtab.yaml values for input, output, and format when the flag
// was not given (prd005 R5.1).
func convertConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	var cfg types.ConvertConfig

	format, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") && viper.IsSet("format") {
		format = viper.GetString("format")
	}
	cfg.Format = types.SourceFormat(format)

	input, _ := cmd.Flags().GetString("input")
	if input == "" && viper.IsSet("input") {
		input = viper.GetString("input")
	}
	if input == "" {
		input = defaultInput
		if cfg.Format == types.FormatECG {
			input = defaultECGInput
		}
	}
	cfg.InputPath = input

	output, _ := cmd.Flags().GetString("output")
	if !cmd.Flags().Changed("output") && viper.IsSet("output") {
		output = viper.GetString("output")
	}
	cfg.OutputPath = output

	delim, _ := cmd.Flags().GetString("delimiter")
	d, err := parseDelimiter(delim)
	if err != nil {
		return cfg, err
	}
	cfg.Delimiter = d

	if typesFile, _ := cmd.Flags().GetString("types-file"); typesFile != "" {
		set, err := filter.LoadSet(typesFile)
		if err != nil {
			return cfg, err
		}
		cfg.TargetTypes = set.Sorted()
	}

	cfg.IncludeWorkouts, _ = cmd.Flags().GetBool("workouts")
	cfg.Dedupe, _ = cmd.Flags().GetBool("dedupe")
	cfg.SortByStart, _ = cmd.Flags().GetBool("sort")
	cfg.ReportPath, _ = cmd.Flags().GetString("report")

	return cfg, nil
}

// parseDelimiter validates the delimiter flag: exactly one character,
// with the two-character literal \t accepted for tab (prd004 R2).
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}
