// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/pdiddy/healthtab/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		format  types.SourceFormat
		wantErr bool
	}{
		{types.FormatExport, false},
		{types.FormatCDA, false},
		{types.FormatECG, false},
		{types.SourceFormat(""), false},
		{types.SourceFormat("sqlite"), true},
	}

	for _, tt := range tests {
		p, err := New(tt.format, false)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q) should have failed", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q) failed: %v", tt.format, err)
			continue
		}
		if p == nil {
			t.Errorf("New(%q) returned a nil parser", tt.format)
		}
	}
}

func TestNewWorkoutsOnlyAffectExport(t *testing.T) {
	p, err := New(types.FormatExport, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ep, ok := p.(*ExportParser)
	if !ok {
		t.Fatalf("expected an ExportParser, got %T", p)
	}
	if !ep.IncludeWorkouts {
		t.Error("workout decoding should be enabled")
	}
}
