// Package settings holds the steel layout settings shared by every section of a
// development: aggregate size, spacing floors, row caps, the width -> column
// count table and the bar size table.
package settings

import "fmt"

// Defaults used when a field is left unset.
const (
	DefaultDagCm          = 2.5 // 1" maximum aggregate
	DefaultPracticalMinCm = 4.0
	DefaultMaxRowsPerFace = 3
	MaxRowsPerFaceLimit   = 3
)

// ColumnRule maps a range of beam widths to the allowed column counts.
// A MaxBCm of zero means the range has no upper bound.
type ColumnRule struct {
	MinBCm  float64 `json:"min_b_cm" yaml:"min_b_cm" toml:"min_b_cm"`
	MaxBCm  float64 `json:"max_b_cm" yaml:"max_b_cm" toml:"max_b_cm"`
	MinCols int     `json:"min_cols" yaml:"min_cols" toml:"min_cols"`
	MaxCols int     `json:"max_cols" yaml:"max_cols" toml:"max_cols"`
}

// Contains reports whether bCm falls inside the rule's width range.
func (r ColumnRule) Contains(bCm float64) bool {
	if bCm < r.MinBCm {
		return false
	}
	return r.MaxBCm <= 0 || bCm <= r.MaxBCm
}

// SteelLayoutSettings configures the grid layout of longitudinal bars.
type SteelLayoutSettings struct {
	DagCm            float64            `json:"dag_cm" yaml:"dag_cm" toml:"dag_cm"`
	PracticalMinCm   float64            `json:"practical_min_cm" yaml:"practical_min_cm" toml:"practical_min_cm"`
	UsePracticalMin  bool               `json:"use_practical_min" yaml:"use_practical_min" toml:"use_practical_min"`
	MaxRowsPerFace   int                `json:"max_rows_per_face" yaml:"max_rows_per_face" toml:"max_rows_per_face"`
	ColumnRules      []ColumnRule       `json:"column_rules" yaml:"column_rules" toml:"column_rules"`
	RebarDiametersCm map[string]float64 `json:"rebar_diameters_cm" yaml:"rebar_diameters_cm" toml:"rebar_diameters_cm"`
}

// Default returns the settings used when nothing else is configured.
func Default() SteelLayoutSettings {
	return SteelLayoutSettings{
		DagCm:           DefaultDagCm,
		PracticalMinCm:  DefaultPracticalMinCm,
		UsePracticalMin: false,
		MaxRowsPerFace:  DefaultMaxRowsPerFace,
		ColumnRules: []ColumnRule{
			{MinBCm: 0, MaxBCm: 20, MinCols: 2, MaxCols: 3},
			{MinBCm: 20, MaxBCm: 30, MinCols: 2, MaxCols: 4},
			{MinBCm: 30, MaxBCm: 40, MinCols: 2, MaxCols: 5},
			{MinBCm: 40, MaxBCm: 60, MinCols: 3, MaxCols: 6},
			{MinBCm: 60, MaxBCm: 0, MinCols: 3, MaxCols: 8},
		},
		RebarDiametersCm: DefaultRebarDiametersCm(),
	}
}

// DefaultRebarDiametersCm returns nominal diameters (cm) of the common bar sizes,
// keyed by canonical token.
func DefaultRebarDiametersCm() map[string]float64 {
	return map[string]float64{
		"6mm":   0.60,
		"8mm":   0.80,
		"3/8":   0.953,
		"12mm":  1.20,
		"1/2":   1.27,
		"5/8":   1.588,
		"3/4":   1.905,
		"1":     2.54,
		"1-1/8": 2.865,
		"1-1/4": 3.226,
		"1-3/8": 3.581,
	}
}

// WithDefaults fills zero-valued scalar fields and a nil bar table with their
// defaults. An empty column rule table is left empty on purpose: the column
// resolver has its own fallback range for it.
func (s SteelLayoutSettings) WithDefaults() SteelLayoutSettings {
	if s.DagCm <= 0 {
		s.DagCm = DefaultDagCm
	}
	if s.PracticalMinCm <= 0 {
		s.PracticalMinCm = DefaultPracticalMinCm
	}
	if s.MaxRowsPerFace <= 0 {
		s.MaxRowsPerFace = DefaultMaxRowsPerFace
	}
	if s.RebarDiametersCm == nil {
		s.RebarDiametersCm = DefaultRebarDiametersCm()
	}
	return s
}

// Validate checks the settings once at the boundary.
func (s SteelLayoutSettings) Validate() error {
	if s.DagCm < 0 {
		return &ValidationError{Field: "dag_cm", Msg: "must not be negative"}
	}
	if s.PracticalMinCm < 0 {
		return &ValidationError{Field: "practical_min_cm", Msg: "must not be negative"}
	}
	if s.MaxRowsPerFace < 1 || s.MaxRowsPerFace > MaxRowsPerFaceLimit {
		return &ValidationError{
			Field: "max_rows_per_face",
			Msg:   fmt.Sprintf("must be between 1 and %d, got %d", MaxRowsPerFaceLimit, s.MaxRowsPerFace),
		}
	}
	for i, r := range s.ColumnRules {
		field := fmt.Sprintf("column_rules[%d]", i)
		if r.MinBCm < 0 {
			return &ValidationError{Field: field, Msg: "min_b_cm must not be negative"}
		}
		if r.MaxBCm > 0 && r.MaxBCm < r.MinBCm {
			return &ValidationError{Field: field, Msg: "max_b_cm is below min_b_cm"}
		}
		if r.MinCols < 0 || r.MaxCols < 0 {
			return &ValidationError{Field: field, Msg: "column counts must not be negative"}
		}
	}
	for token, cm := range s.RebarDiametersCm {
		if cm <= 0 {
			return &ValidationError{
				Field: fmt.Sprintf("rebar_diameters_cm[%q]", token),
				Msg:   "diameter must be positive",
			}
		}
	}
	return nil
}

// ValidationError reports an invalid settings field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings: %s %s", e.Field, e.Msg)
}
