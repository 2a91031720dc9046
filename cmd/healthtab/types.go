package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/healthtab/internal/filter"
	"github.com/pdiddy/healthtab/internal/normalize"
	"github.com/pdiddy/healthtab/pkg/types"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the record types a conversion run would keep",
	Long: `Types prints the active selection, one identifier per line, with the
shape each identifier normalizes as (quantity or category). The selection
comes from --types-file when given, otherwise from the per-format default.`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().String("format", "export", "source format the selection applies to: export, cda, or ecg")
	typesCmd.Flags().String("types-file", "", "YAML file with a custom record type selection")

	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var set filter.Set
	if typesFile, _ := cmd.Flags().GetString("types-file"); typesFile != "" {
		s, err := filter.LoadSet(typesFile)
		if err != nil {
			return err
		}
		set = s
	} else {
		set = filter.DefaultFor(types.SourceFormat(format))
	}

	for _, id := range set.Sorted() {
		fmt.Fprintf(os.Stdout, "%-50s %s\n", id, normalize.ShapeOf(id))
	}
	return nil
}
