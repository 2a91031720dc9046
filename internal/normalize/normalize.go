// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw records onto the common output row.
// Implements: prd003-normalization (R1-R5);
//
//	docs/ARCHITECTURE § Normalization.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/healthtab/pkg/types"
)

// ErrMissingAttribute marks a record that cannot become a row because a
// required attribute is absent (R3.1). It is never fatal: callers count
// the skip and continue (R3.2).
var ErrMissingAttribute = errors.New("record missing required attribute")

// Shape classifies how an identifier carries its value (R2).
type Shape string

const (
	// ShapeQuantity marks numeric-valued identifiers (R2.1).
	ShapeQuantity Shape = "quantity"

	// ShapeCategory marks enumeration-valued identifiers (R2.2, R2.3).
	ShapeCategory Shape = "category"
)

// ShapeOf returns the shape of a record type identifier. Identifiers
// outside the HK quantity namespace are category-shaped (R2.3).
func ShapeOf(id string) Shape {
	if strings.HasPrefix(id, "HKQuantityTypeIdentifier") {
		return ShapeQuantity
	}
	return ShapeCategory
}

// Normalize maps one record onto an output row (R1.1). Attributes pass
// through verbatim: no unit conversion, no timezone handling, no
// rounding (R5). A record missing startDate, endDate, or its value
// returns an error wrapping ErrMissingAttribute; an empty attribute
// counts as absent (R3.3).
func Normalize(rec types.Record) (types.Row, error) {
	if rec.Workout {
		return normalizeWorkout(rec)
	}

	switch {
	case rec.StartDate == "":
		return types.Row{}, fmt.Errorf("%w: startDate on %s", ErrMissingAttribute, rec.Type)
	case rec.EndDate == "":
		return types.Row{}, fmt.Errorf("%w: endDate on %s", ErrMissingAttribute, rec.Type)
	case rec.Value == "":
		return types.Row{}, fmt.Errorf("%w: value on %s", ErrMissingAttribute, rec.Type)
	}

	return types.Row{
		Type:      rec.Type,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
		Value:     rec.Value,
	}, nil
}

// normalizeWorkout handles the workout variant (R2.4): the value was
// composed at parse time and may legitimately be empty (R4.2), but a
// workout without an activity type or time range cannot become a row
// (R4.3).
func normalizeWorkout(rec types.Record) (types.Row, error) {
	switch {
	case rec.Type == "":
		return types.Row{}, fmt.Errorf("%w: workoutActivityType", ErrMissingAttribute)
	case rec.StartDate == "":
		return types.Row{}, fmt.Errorf("%w: startDate on %s", ErrMissingAttribute, rec.Type)
	case rec.EndDate == "":
		return types.Row{}, fmt.Errorf("%w: endDate on %s", ErrMissingAttribute, rec.Type)
	}

	return types.Row{
		Type:      rec.Type,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
		Value:     rec.Value,
	}, nil
}
