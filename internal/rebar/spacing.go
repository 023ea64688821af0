package rebar

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/settings"
)

// Column range used when the settings carry no rule for a width.
const (
	DefaultMinCols = 2
	DefaultMaxCols = 5
)

// MinClearSpacingCm returns the minimum clear distance between parallel bars of
// diameter dbCm: max(db, 2.5 cm, 1.3 dag), raised to the practical floor when
// the settings ask for it.
func MinClearSpacingCm(dbCm float64, s settings.SteelLayoutSettings) float64 {
	sMin := math.Max(dbCm, math.Max(nscp.MinClearSpacingCm, nscp.AggregateSpacingFactor*s.DagCm))
	if s.UsePracticalMin {
		floor := s.PracticalMinCm
		if floor <= 0 {
			floor = settings.DefaultPracticalMinCm
		}
		sMin = math.Max(sMin, floor)
	}
	return sMin
}

// ResolveColumnRange returns the column count bounds for a section of width
// bCm from the first matching rule. Bounds are at least 2 and max >= min.
func ResolveColumnRange(bCm float64, s settings.SteelLayoutSettings) (minCols, maxCols int) {
	for _, r := range s.ColumnRules {
		if !r.Contains(bCm) {
			continue
		}
		minCols = max(r.MinCols, 2)
		maxCols = max(r.MaxCols, 2, minCols)
		return minCols, maxCols
	}
	return DefaultMinCols, DefaultMaxCols
}

// AreaCm2 returns the nominal cross-sectional area of a bar.
func AreaCm2(dbCm float64) float64 {
	return math.Pi * dbCm * dbCm / 4
}
