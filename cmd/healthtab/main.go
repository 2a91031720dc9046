// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the healthtab CLI.
// Implements: prd001-parsing, prd002-selection, prd003-normalization,
//             prd004-output, prd005-run (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the healthtab CLI.
var rootCmd = &cobra.Command{
	Use:   "healthtab",
	Short: "Convert Apple Health exports to flat CSV tables",
	Long: `healthtab converts the XML documents the Apple Health app exports into a
flat delimited table of health metrics. It reads the native export.xml, the
HL7 CDA variant, or a directory of electrocardiogram CSV files, keeps a
configurable set of record types, and writes one row per record.

Runs are one-shot and fully offline: one source in, one table out.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./healthtab.yaml or ~/.config/healthtab/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("healthtab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "healthtab"))
		}
	}

	viper.SetEnvPrefix("HEALTHTAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
