package layout

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/settings"
)

const geomTol = 1e-9

// candidate is one accepted (rows, cols) grid.
type candidate struct {
	rows, cols int
	dx         float64
}

func (c candidate) capacity() int { return c.rows * c.cols }

// search holds the derived geometry shared by every candidate of one face.
type search struct {
	usableWidth float64
	pitchMin    float64 // governing db + s_min
	depthRoom   float64 // vertical room between the outermost and innermost row centres
	rows        []int
	cols        []int
}

// ComputeFaceLayout chooses a grid for the face and places the bars in it.
//
// A face without main bars, or with a non-positive width or height, yields an
// empty result and no error. When no grid satisfies spacing and height the
// error is a *Failure carrying the reason. Cut-off bars are placed best-effort;
// any line that does not fit is reported in Result.Shortfalls.
func ComputeFaceLayout(in FaceInput, s settings.SteelLayoutSettings) (*Result, error) {
	res := &Result{Face: in.Face}
	if in.WidthCm <= 0 || in.HeightCm <= 0 || in.Main.Qty <= 0 {
		return res, nil
	}

	cut := in.Cutoff
	cut.L1Qty = max(cut.L1Qty, 0)
	cut.L2Qty = max(cut.L2Qty, 0)

	dbMain := in.Main.Diameter.Cm(s)
	dbGov := math.Max(dbMain, cut.MaxDiameterCm())
	sMin := rebar.MinClearSpacingCm(dbGov, s)
	coverEff := EffectiveCoverCm(in.CoverCm, in.Stirrups, s)

	res.MainDiameterCm = dbMain
	res.CutoffDiameterCm = cut.MaxDiameterCm()
	res.L1DiameterCm = cut.L1DiameterCm
	res.L2DiameterCm = cut.L2DiameterCm
	res.GoverningDiameterCm = dbGov
	res.MinSpacingCm = sMin
	res.CoverEffCm = coverEff

	sr := search{
		usableWidth: in.WidthCm - 2*(coverEff+dbGov/2),
		pitchMin:    dbGov + sMin,
		depthRoom:   in.HeightCm - 2*coverEff - dbGov,
		rows:        rowChoices(in.Override, s),
		cols:        colChoices(in.Override, in.WidthCm, s),
	}
	if sr.usableWidth <= 0 {
		return nil, &Failure{Reason: fmt.Sprintf(
			"no usable width: b=%.1f cm leaves %.2f cm between bar centres after %.2f cm effective cover",
			in.WidthCm, sr.usableWidth, coverEff)}
	}
	if sr.depthRoom < 0 {
		return nil, &Failure{Reason: fmt.Sprintf(
			"no usable height: h=%.1f cm is less than twice the %.2f cm effective cover plus one bar",
			in.HeightCm, coverEff)}
	}

	full := in.Main.Qty + cut.Total()
	best, ok := sr.pick(full, full)
	if !ok && cut.Total() > 0 {
		best, ok = sr.pick(in.Main.Qty, full)
	}
	if !ok {
		return nil, &Failure{Reason: sr.reason(in, dbGov, sMin)}
	}

	res.Rows = best.rows
	res.Cols = best.cols
	res.PitchCm = best.dx
	res.RowPitchCm = sr.pitchMin
	place(res, best, sr, in, cut, coverEff, dbGov)
	return res, nil
}

// pick returns the preferred candidate among those holding at least need
// bars. When need is below want, a candidate closer to want wins first so the
// best-effort grid keeps as many cut-off bars as it can.
func (sr search) pick(need, want int) (candidate, bool) {
	var best candidate
	found := false
	for _, rows := range sr.rows {
		if !sr.rowsFit(rows) {
			continue
		}
		for _, cols := range sr.cols {
			c, ok := sr.accept(rows, cols)
			if !ok || c.capacity() < need {
				continue
			}
			if !found || better(c, best, want) {
				best, found = c, true
			}
		}
	}
	return best, found
}

// better orders candidates: more of the wanted bars held, then fewer rows,
// then the largest horizontal pitch.
func better(c, than candidate, want int) bool {
	cHeld, tHeld := min(c.capacity(), want), min(than.capacity(), want)
	if cHeld != tHeld {
		return cHeld > tHeld
	}
	if c.rows != than.rows {
		return c.rows < than.rows
	}
	return c.dx > than.dx+geomTol
}

func (sr search) rowsFit(rows int) bool {
	return float64(rows-1)*sr.pitchMin <= sr.depthRoom+geomTol
}

func (sr search) accept(rows, cols int) (candidate, bool) {
	if rows < 1 || cols < 1 {
		return candidate{}, false
	}
	if cols == 1 {
		return candidate{rows: rows, cols: 1}, true
	}
	dx := sr.usableWidth / float64(cols-1)
	if dx+geomTol < sr.pitchMin {
		return candidate{}, false
	}
	return candidate{rows: rows, cols: cols, dx: dx}, true
}

func (sr search) reason(in FaceInput, dbGov, sMin float64) string {
	maxCols := 1
	if sr.pitchMin > 0 {
		maxCols = int(math.Floor(sr.usableWidth/sr.pitchMin+geomTol)) + 1
	}
	maxRows := 0
	for _, r := range sr.rows {
		if sr.rowsFit(r) {
			maxRows = max(maxRows, r)
		}
	}
	return fmt.Sprintf(
		"no grid holds %d main bars of %.2f cm in b=%.1f h=%.1f cm: min pitch %.2f cm (s_min %.2f) allows %d columns against the %v column rule and %d rows",
		in.Main.Qty, dbGov, in.WidthCm, in.HeightCm, sr.pitchMin, sMin, maxCols, sr.cols, maxRows)
}

// EffectiveCoverCm returns the nominal cover plus the thickness of every hoop
// loop, the distance from the concrete face to the outside of the bars.
func EffectiveCoverCm(coverCm float64, st development.StirrupsSection, s settings.SteelLayoutSettings) float64 {
	if st.Loops <= 0 || st.Diameter.IsZero() {
		return coverCm
	}
	return coverCm + st.Diameter.Cm(s)*float64(st.Loops)
}

func rowChoices(o development.LayoutOverride, s settings.SteelLayoutSettings) []int {
	maxRows := s.MaxRowsPerFace
	if maxRows <= 0 {
		maxRows = settings.DefaultMaxRowsPerFace
	}
	maxRows = min(maxRows, settings.MaxRowsPerFaceLimit)
	// a forced row count never exceeds the configured maximum
	if o.Rows > 0 {
		return []int{min(o.Rows, maxRows)}
	}
	out := make([]int, 0, maxRows)
	for r := 1; r <= maxRows; r++ {
		out = append(out, r)
	}
	return out
}

func colChoices(o development.LayoutOverride, bCm float64, s settings.SteelLayoutSettings) []int {
	if o.Cols > 0 {
		return []int{o.Cols}
	}
	lo, hi := rebar.ResolveColumnRange(bCm, s)
	out := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		out = append(out, c)
	}
	return out
}

// slotOrder returns the column fill order of a row: outer pairs first, the
// centre column last when cols is odd.
func slotOrder(cols int) []int {
	order := make([]int, 0, cols)
	for i, j := 0, cols-1; i <= j; i, j = i+1, j-1 {
		if i == j {
			order = append(order, i)
			break
		}
		order = append(order, i, j)
	}
	return order
}

func place(res *Result, c candidate, sr search, in FaceInput, cut CutoffDemand, coverEff, dbGov float64) {
	zs := make([]float64, c.cols)
	for j := range zs {
		if c.cols > 1 {
			zs[j] = -sr.usableWidth/2 + float64(j)*c.dx
		}
	}
	rowY := func(r int) float64 {
		off := coverEff + dbGov/2 + float64(r)*sr.pitchMin
		if in.Face == development.Top {
			return in.HeightCm - off
		}
		return off
	}

	order := slotOrder(c.cols)
	slots := make([]Bar, 0, c.capacity())
	for r := 0; r < c.rows; r++ {
		y := rowY(r)
		for _, j := range order {
			slots = append(slots, Bar{Row: r, Col: j, Y: y, Z: zs[j]})
		}
	}

	next := 0
	take := func(n int) []Bar {
		n = min(n, len(slots)-next)
		if n <= 0 {
			return nil
		}
		out := append([]Bar(nil), slots[next:next+n]...)
		next += n
		return out
	}

	res.Main = take(in.Main.Qty)
	res.L1 = take(cut.L1Qty)
	res.L2 = take(cut.L2Qty)

	for _, l := range development.Lines {
		want := cut.Qty(l)
		got := res.CutoffPool(l)
		if got < want {
			res.Shortfalls = append(res.Shortfalls, Shortfall{Line: l, Requested: want, Placed: got})
		}
	}
}
