// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/healthtab/pkg/types"
)

// ECGRecordType is the identifier electrocardiogram records carry in the
// output; the per-recording CSV files have no HK identifier of their own.
const ECGRecordType = "ECG"

// ecgHeaderLines bounds the metadata scan. The ecg_*.csv preamble is a
// short block of key,value lines before the voltage samples begin.
const ecgHeaderLines = 11

// ECGParser reads a directory of electrocardiogram CSV files (R3). Each
// file contributes at most one record, built from its metadata header;
// the voltage samples below the header are never read.
type ECGParser struct{}

// Parse scans dir for ecg_*.csv files in sorted filename order (R3.1).
// A file that cannot be read produces a warning and is skipped (R3.4).
func (p *ECGParser) Parse(dir string, w io.Writer) ([]types.Record, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMalformed, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "ecg_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var records []types.Record
	for _, path := range paths {
		rec, ok, err := ecgRecord(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", path, err)
			continue
		}
		if !ok {
			// No Recorded Date in the header (R3.4).
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ecgRecord extracts the metadata header of one ECG file (R3.2, R3.3).
// The second return value reports whether the header carried a
// Recorded Date; without one the file cannot become a record.
func ecgRecord(path string) (types.Record, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Record{}, false, err
	}
	defer f.Close()

	meta, err := ecgHeader(f)
	if err != nil {
		return types.Record{}, false, err
	}

	recorded := meta["Recorded Date"]
	if recorded == "" {
		return types.Record{}, false, nil
	}
	return types.Record{
		Type:      ECGRecordType,
		StartDate: recorded,
		EndDate:   recorded,
		Value:     meta["Classification"],
	}, true, nil
}

// ecgHeader reads the leading key,value lines into a map. Values keep
// only their content: surrounding whitespace and the quotes Apple wraps
// around some fields are stripped (R3.3).
func ecgHeader(r io.Reader) (map[string]string, error) {
	meta := make(map[string]string)
	sc := bufio.NewScanner(r)
	for i := 0; i < ecgHeaderLines && sc.Scan(); i++ {
		key, value, found := strings.Cut(sc.Text(), ",")
		if !found {
			continue
		}
		meta[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return meta, nil
}
