// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report describes one conversion run for the optional YAML report
// (R4.1).
type Report struct {
	Input       string         `yaml:"input"`
	Output      string         `yaml:"output"`
	Format      string         `yaml:"format"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Rows        int            `yaml:"rows"`
	Parsed      int            `yaml:"parsed"`
	Matched     int            `yaml:"matched"`
	Skipped     int            `yaml:"skipped"`
	Duplicates  int            `yaml:"duplicates_removed"`
	RowsByType  map[string]int `yaml:"rows_by_type,omitempty"`
}

// WriteReport marshals the run report to YAML at path. The report shares
// the writability contract of the table itself (R3.1) and is only
// written after a successful table write (R4.2).
func WriteReport(path string, rep Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, path, err)
	}
	return nil
}
