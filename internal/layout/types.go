// Package layout places the longitudinal bars of one face of one span into a
// row/column grid that respects the code clear spacing, the width-based
// column rules and the row cap.
//
// Coordinates are in centimetres: Y is measured up from the bottom of the
// section and Z from its vertical centreline.
package layout

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// FaceInput is everything the grid search needs for one face.
type FaceInput struct {
	Face     development.Face
	WidthCm  float64
	HeightCm float64
	CoverCm  float64 // nominal concrete cover

	Stirrups development.StirrupsSection
	Main     development.SteelMeta
	Cutoff   CutoffDemand
	Override development.LayoutOverride
}

// CutoffDemand is the number of cut-off bars per line that the grid must try
// to hold, with their diameters.
type CutoffDemand struct {
	L1Qty        int
	L2Qty        int
	L1DiameterCm float64
	L2DiameterCm float64
}

// Qty returns the demand of line l.
func (c CutoffDemand) Qty(l development.Line) int {
	if l == development.L2 {
		return c.L2Qty
	}
	return c.L1Qty
}

// Total returns the combined cut-off demand.
func (c CutoffDemand) Total() int { return max(c.L1Qty, 0) + max(c.L2Qty, 0) }

// MaxDiameterCm returns the largest diameter among lines with demand.
func (c CutoffDemand) MaxDiameterCm() float64 {
	d := 0.0
	if c.L1Qty > 0 {
		d = max(d, c.L1DiameterCm)
	}
	if c.L2Qty > 0 {
		d = max(d, c.L2DiameterCm)
	}
	return d
}

// Role tells what a placed bar is.
type Role int

const (
	RoleMain Role = iota
	RoleL1
	RoleL2
)

func (r Role) String() string {
	switch r {
	case RoleMain:
		return "main"
	case RoleL1:
		return "L1"
	case RoleL2:
		return "L2"
	}
	return "unknown"
}

// Bar is one placed bar.
type Bar struct {
	Row int
	Col int
	Y   float64
	Z   float64
}

// Shortfall records a cut-off line that could not be fully placed.
type Shortfall struct {
	Line      development.Line
	Requested int
	Placed    int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s cut-off: %d of %d bars placed", s.Line, s.Placed, s.Requested)
}

// Result is the grid chosen for a face.
type Result struct {
	Face development.Face

	Rows         int
	Cols         int
	PitchCm      float64 // horizontal centre-to-centre pitch, 0 for a single column
	RowPitchCm   float64 // vertical centre-to-centre pitch between rows
	MinSpacingCm float64 // governing minimum clear spacing
	CoverEffCm   float64 // cover plus hoop wrap

	GoverningDiameterCm float64
	MainDiameterCm      float64
	CutoffDiameterCm    float64 // largest cut-off diameter
	L1DiameterCm        float64
	L2DiameterCm        float64

	Main []Bar
	L1   []Bar
	L2   []Bar

	Shortfalls []Shortfall
}

// Empty reports whether the face carries no bars.
func (r *Result) Empty() bool {
	return r == nil || len(r.Main)+len(r.L1)+len(r.L2) == 0
}

// Bars returns the bars of one role.
func (r *Result) Bars(role Role) []Bar {
	switch role {
	case RoleL1:
		return r.L1
	case RoleL2:
		return r.L2
	}
	return r.Main
}

// CutoffPool returns how many cut-off bars of line l were placed.
func (r *Result) CutoffPool(l development.Line) int {
	if r == nil {
		return 0
	}
	if l == development.L2 {
		return len(r.L2)
	}
	return len(r.L1)
}

// SteelAreaCm2 returns the total bar area of the face.
func (r *Result) SteelAreaCm2() float64 {
	if r == nil {
		return 0
	}
	return float64(len(r.Main))*rebar.AreaCm2(r.MainDiameterCm) +
		float64(len(r.L1))*rebar.AreaCm2(r.L1DiameterCm) +
		float64(len(r.L2))*rebar.AreaCm2(r.L2DiameterCm)
}

// Failure is returned when no grid satisfies the constraints.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string { return "layout: " + f.Reason }
