// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/healthtab/pkg/types"
)

var sampleRows = []types.Row{
	{
		Type:      "HKQuantityTypeIdentifierStepCount",
		StartDate: "2026-07-01 08:00:00 -0700",
		EndDate:   "2026-07-01 08:05:00 -0700",
		Value:     "312",
	},
	{
		Type:      "HKCategoryTypeIdentifierSleepAnalysis",
		StartDate: "2026-06-30 23:10:00 -0700",
		EndDate:   "2026-07-01 06:40:00 -0700",
		Value:     "HKCategoryValueSleepAnalysisAsleepCore",
	},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_data.csv")
	require.NoError(t, WriteCSV(path, sampleRows, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "type,startDate,endDate,value\n" +
		"HKQuantityTypeIdentifierStepCount,2026-07-01 08:00:00 -0700,2026-07-01 08:05:00 -0700,312\n" +
		"HKCategoryTypeIdentifierSleepAnalysis,2026-06-30 23:10:00 -0700,2026-07-01 06:40:00 -0700,HKCategoryValueSleepAnalysisAsleepCore\n"
	assert.Equal(t, want, string(data))
}

func TestWriteCSVEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_data.csv")
	require.NoError(t, WriteCSV(path, nil, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "type,startDate,endDate,value\n", string(data),
		"an empty run still writes the header line")
}

func TestWriteCSVQuotesEmbeddedDelimiter(t *testing.T) {
	rows := []types.Row{{
		Type:      "HKQuantityTypeIdentifierBodyMass",
		StartDate: "2026-07-02 07:00:00 +0200",
		EndDate:   "2026-07-02 07:00:00 +0200",
		Value:     "77,65",
	}}

	path := filepath.Join(t.TempDir(), "health_data.csv")
	require.NoError(t, WriteCSV(path, rows, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"77,65"`)
}

func TestWriteCSVTabDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_data.tsv")
	require.NoError(t, WriteCSV(path, sampleRows[:1], '\t'))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"type\tstartDate\tendDate\tvalue\n"+
			"HKQuantityTypeIdentifierStepCount\t2026-07-01 08:00:00 -0700\t2026-07-01 08:05:00 -0700\t312\n",
		string(data))
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	require.NoError(t, WriteCSV(path, nil, ','))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "type,startDate,endDate,value\n", string(data))
}

func TestWriteCSVNotWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "health_data.csv")
	err := WriteCSV(path, sampleRows, ',')
	assert.True(t, errors.Is(err, ErrNotWritable), "got %v", err)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	rep := Report{
		Input:       "export.xml",
		Output:      "health_data.csv",
		Format:      "export",
		GeneratedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		Rows:        2,
		Parsed:      6,
		Matched:     2,
		Skipped:     1,
		Duplicates:  0,
		RowsByType: map[string]int{
			"HKQuantityTypeIdentifierStepCount":     1,
			"HKCategoryTypeIdentifierSleepAnalysis": 1,
		},
	}
	require.NoError(t, WriteReport(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, rep.Input, got.Input)
	assert.Equal(t, rep.Rows, got.Rows)
	assert.Equal(t, 1, got.RowsByType["HKQuantityTypeIdentifierStepCount"])
}

func TestWriteReportNotWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "report.yaml")
	err := WriteReport(path, Report{})
	assert.True(t, errors.Is(err, ErrNotWritable), "got %v", err)
}
