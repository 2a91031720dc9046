package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of healthtab",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("healthtab %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
