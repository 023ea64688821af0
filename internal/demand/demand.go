// Package demand finds how many cut-off bars (bastones) of each line are
// active at the same time along one face of a span.
package demand

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
)

// GridM is the grid extents are snapped to.
const GridM = 1.0 / gridPerM

const gridPerM = 20

// eps absorbs float noise when comparing extents.
const eps = 1e-9

// Default reaches as fractions of the span length.
const (
	DefaultSupportReach = 1.0 / 3 // z1/z3 L3
	DefaultMidReach     = 1.0 / 5 // z2 L1/L2
)

// Interval is a half-open stretch [Start, End) of the span, in metres from
// its left support, where Weight bars of one line are present.
type Interval struct {
	Zone       development.Zone
	Line       development.Line
	Start      float64
	End        float64
	Weight     int
	DiameterCm float64
}

// Covers reports whether x lies in the interval.
func (iv Interval) Covers(x float64) bool {
	return x >= iv.Start && x < iv.End
}

// Demand is the cut-off demand of one face of one span.
type Demand struct {
	Span    int
	Face    development.Face
	LengthM float64

	L1Peak       int
	L2Peak       int
	CombinedPeak int

	L1DiameterCm        float64
	L2DiameterCm        float64
	GoverningDiameterCm float64

	Intervals []Interval
}

// ComputeCutoffDemand builds the cut-off intervals of the three zones of a
// face and sweeps them for the peak simultaneous count per line and overall.
// An invalid span index or a zero-length span gives zero demand.
func ComputeCutoffDemand(dev *development.Development, span int, face development.Face) Demand {
	d := Demand{Span: span, Face: face}
	if dev == nil || span < 0 || span >= len(dev.Spans) {
		return d
	}
	sp := dev.Spans[span]
	if sp.L <= 0 {
		return d
	}
	d.LengthM = sp.L

	lc := dev.LcM
	if lc <= 0 {
		lc = development.DefaultLcM
	}

	for _, z := range development.Zones {
		d.Intervals = append(d.Intervals, zoneIntervals(z, sp.Baston(face, z), sp.L, lc)...)
	}
	for i := range d.Intervals {
		d.Intervals[i].DiameterCm = sp.Baston(face, d.Intervals[i].Zone).Line(d.Intervals[i].Line).Diameter.Cm(dev.Settings)
	}

	d.L1Peak = Peak(filter(d.Intervals, development.L1))
	d.L2Peak = Peak(filter(d.Intervals, development.L2))
	d.CombinedPeak = Peak(d.Intervals)

	for _, iv := range d.Intervals {
		switch iv.Line {
		case development.L1:
			d.L1DiameterCm = math.Max(d.L1DiameterCm, iv.DiameterCm)
		case development.L2:
			d.L2DiameterCm = math.Max(d.L2DiameterCm, iv.DiameterCm)
		}
	}
	d.GoverningDiameterCm = math.Max(d.L1DiameterCm, d.L2DiameterCm)
	return d
}

// zoneIntervals returns the L1 and L2 intervals of one zone. L2 is offset
// inward by lc from every inner boundary and dropped when nothing is left.
func zoneIntervals(z development.Zone, cfg development.BastonCfg, length, lc float64) []Interval {
	var out []Interval
	add := func(l development.Line, start, end float64) {
		line := cfg.Line(l)
		if !line.Active() || end-start <= eps {
			return
		}
		out = append(out, Interval{Zone: z, Line: l, Start: start, End: end, Weight: line.Qty})
	}

	switch z {
	case development.Z1:
		l3 := extent(cfg.L3M, length*DefaultSupportReach, length)
		add(development.L1, 0, l3)
		if l3 > lc+eps {
			add(development.L2, 0, l3-lc)
		}
	case development.Z3:
		l3 := extent(cfg.L3M, length*DefaultSupportReach, length)
		add(development.L1, length-l3, length)
		if l3 > lc+eps {
			add(development.L2, length-l3+lc, length)
		}
	case development.Z2:
		left := extent(cfg.L1M, length*DefaultMidReach, length)
		right := extent(cfg.L2M, length*DefaultMidReach, length)
		add(development.L1, left, length-right)
		add(development.L2, left+lc, length-right-lc)
	}
	return out
}

// extent resolves an optional reach: default when unset, snapped to GridM,
// clamped to [0, length].
func extent(v *float64, def, length float64) float64 {
	x := def
	if v != nil {
		x = *v
	}
	return clamp(Snap(x), 0, length)
}

// Snap rounds x to the nearest multiple of GridM.
func Snap(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*gridPerM) / gridPerM
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func filter(ivs []Interval, l development.Line) []Interval {
	var out []Interval
	for _, iv := range ivs {
		if iv.Line == l {
			out = append(out, iv)
		}
	}
	return out
}

type event struct {
	x     float64
	delta int
}

// Peak sweeps the intervals and returns the largest total weight present at
// any single point. Ends are processed before starts at the same coordinate,
// so touching intervals do not overlap.
func Peak(ivs []Interval) int {
	events := make([]event, 0, 2*len(ivs))
	for _, iv := range ivs {
		if iv.End <= iv.Start || iv.Weight <= 0 {
			continue
		}
		events = append(events, event{iv.Start, iv.Weight}, event{iv.End, -iv.Weight})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].x != events[j].x {
			return events[i].x < events[j].x
		}
		return events[i].delta < events[j].delta
	})

	run, peak := 0, 0
	for _, e := range events {
		run += e.delta
		peak = max(peak, run)
	}
	return peak
}

// Peak returns the peak of line l.
func (d Demand) Peak(l development.Line) int {
	if l == development.L2 {
		return d.L2Peak
	}
	return d.L1Peak
}

// ActiveAt returns the number of line l bars covering x, in metres from the
// left support. The right support itself counts as inside intervals that
// reach it.
func (d Demand) ActiveAt(x float64, l development.Line) int {
	n := 0
	for _, iv := range d.Intervals {
		if iv.Line != l {
			continue
		}
		if iv.Covers(x) || (x == iv.End && iv.End >= d.LengthM) {
			n += iv.Weight
		}
	}
	return n
}

// VisibleAt clips ActiveAt to the number of bars the section layout actually
// placed for the line.
func (d Demand) VisibleAt(x float64, l development.Line, placed int) int {
	return min(d.ActiveAt(x, l), max(placed, 0))
}

// Empty reports whether the face has no cut-off bars.
func (d Demand) Empty() bool { return d.CombinedPeak == 0 }

// LayoutDemand converts the peaks into the cut-off demand of the grid search.
func (d Demand) LayoutDemand() layout.CutoffDemand {
	return layout.CutoffDemand{
		L1Qty:        d.L1Peak,
		L2Qty:        d.L2Peak,
		L1DiameterCm: d.L1DiameterCm,
		L2DiameterCm: d.L2DiameterCm,
	}
}
