// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes repeated output rows.
// Implements: prd005-run (R2);
//
//	docs/ARCHITECTURE § Run Pipeline.
package dedup

import (
	"github.com/cespare/xxhash/v2"

	"github.com/pdiddy/healthtab/pkg/types"
)

// key hashes the identity tuple of a row. Fields are joined with NUL,
// which cannot occur in attribute text, so "a"+"bc" and "ab"+"c" never
// collapse into the same key.
func key(row types.Row) uint64 {
	return xxhash.Sum64String(row.Type + "\x00" + row.StartDate + "\x00" + row.EndDate + "\x00" + row.Value)
}

// Rows drops every row whose {type, startDate, endDate, value} tuple has
// already appeared, keeping first occurrences in their original order
// (R2.1). The second return value counts the removed rows for the run
// summary (R1.3).
func Rows(rows []types.Row) ([]types.Row, int) {
	if len(rows) == 0 {
		return rows, 0
	}

	seen := make(map[uint64]struct{}, len(rows))
	unique := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, row)
	}
	return unique, len(rows) - len(unique)
}
