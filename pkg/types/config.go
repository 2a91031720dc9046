package types

// SourceFormat identifies the parser backend for a conversion run.
// Per prd001-parsing R5.1.
type SourceFormat string

const (
	FormatExport SourceFormat = "export"
	FormatCDA    SourceFormat = "cda"
	FormatECG    SourceFormat = "ecg"
)

// ConvertConfig holds the settings for a single conversion run.
// Per prd005-run R1, R4.1.
type ConvertConfig struct {
	// InputPath is the source document, or the ECG directory for FormatECG.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the destination CSV file. Overwritten if present
	// (prd004-output R1.5).
	OutputPath string `json:"output" yaml:"output"`

	// Format selects the parser backend: export, cda, or ecg.
	Format SourceFormat `json:"format" yaml:"format"`

	// Delimiter is the output field separator (default comma).
	// Per prd004-output R2.1.
	Delimiter rune `json:"-" yaml:"-"`

	// TargetTypes replaces the built-in target set when non-empty
	// (prd002-selection R3.1).
	TargetTypes []string `json:"target_types,omitempty" yaml:"target_types,omitempty"`

	// IncludeWorkouts enables Workout element extraction for FormatExport
	// (prd001-parsing R1.4).
	IncludeWorkouts bool `json:"include_workouts" yaml:"include_workouts"`

	// Dedupe drops rows whose output tuple was already emitted
	// (prd005-run R2.1).
	Dedupe bool `json:"dedupe" yaml:"dedupe"`

	// SortByStart orders rows by start date before writing (prd005-run R3.1).
	SortByStart bool `json:"sort_by_start" yaml:"sort_by_start"`

	// ReportPath, when set, receives a YAML run report after a successful
	// write (prd004-output R4).
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}
