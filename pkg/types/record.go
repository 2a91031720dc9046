// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the healthtab pipeline.
// Implements: prd001-parsing (Record, R1.2);
//
//	prd003-normalization (Row, R1.1-R1.2);
//	prd005-run (ConvertConfig, SourceFormat).
//
// See docs/ARCHITECTURE § Data Structures.
package types

// Record is one raw measurement entry parsed from a health export source.
// All fields are verbatim copies of the source attributes; no timezone or
// unit conversion happens at parse time. Per prd001-parsing R1.2.
type Record struct {
	// Type is the record type identifier (e.g. "HKQuantityTypeIdentifierStepCount",
	// a workout activity type, or "ECG").
	Type string `json:"type" yaml:"type"`

	// StartDate is the measurement start timestamp as written in the source.
	StartDate string `json:"start_date" yaml:"start_date"`

	// EndDate is the measurement end timestamp as written in the source.
	EndDate string `json:"end_date" yaml:"end_date"`

	// Value is the raw payload: a numeric quantity, a category code, or a
	// composed workout summary (prd003-normalization R4).
	Value string `json:"value" yaml:"value"`

	// Workout marks records decoded from Workout elements. Workout activity
	// identifiers are open-ended and bypass the target set
	// (prd002-selection R2.4).
	Workout bool `json:"workout,omitempty" yaml:"workout,omitempty"`
}

// Row is the normalized four-field output shape, identical for every source
// record shape. Field order here is the output column order.
// Per prd003-normalization R1.1.
type Row struct {
	// Type is one of the active target identifiers (or a workout activity type).
	Type string `json:"type" yaml:"type"`

	// StartDate is the start timestamp, copied verbatim from the record.
	StartDate string `json:"startDate" yaml:"startDate"`

	// EndDate is the end timestamp, copied verbatim from the record.
	EndDate string `json:"endDate" yaml:"endDate"`

	// Value is the quantity number or category code as a string.
	Value string `json:"value" yaml:"value"`
}
