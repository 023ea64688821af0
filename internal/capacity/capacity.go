// Package capacity computes the flexural strength of a detailed rectangular
// section by strain compatibility over its bar layers.
package capacity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// Bending selects which face is in tension.
type Bending int

const (
	Positive Bending = iota // bottom in tension (mid-span)
	Negative                // top in tension (over supports)
)

func (b Bending) String() string {
	if b == Negative {
		return "negative"
	}
	return "positive"
}

// ErrNoTensionSteel is returned when no layer ends up on the tension side.
var ErrNoTensionSteel = errors.New("no reinforcement on the tension side")

// Layer is a row of bars at one level.
type Layer struct {
	Y     float64 // mm from the section bottom
	Area  float64 // mm²
	Label string
}

// SectionInput is a rectangular section with its bar layers.
type SectionInput struct {
	Width  float64 // b, mm
	Height float64 // h, mm
	Fc     float64 // MPa
	Fy     float64 // MPa

	Layers  []Layer
	Bending Bending
}

// LayerResult is the state of one layer at the capacity.
type LayerResult struct {
	Layer
	Depth      float64 // from the compression fibre, mm
	Strain     float64 // compression positive
	Stress     float64 // MPa, compression positive
	Force      float64 // kN, compression positive, net of displaced concrete
	IsTension  bool
	HasYielded bool
}

// Result holds the analysis outcome.
type Result struct {
	C     float64 // neutral axis depth from the compression fibre (mm)
	A     float64 // stress block depth (mm)
	Beta1 float64

	D        float64 // depth to the centroid of the tension steel (mm)
	Dt       float64 // depth to the extreme tension layer (mm)
	EpsilonT float64

	Cc float64 // concrete compression (kN)
	Cs float64 // compression steel (kN)
	T  float64 // tension steel (kN)

	As            float64 // tension steel area (mm²)
	Rho           float64
	RhoMin        float64
	MeetsMinReinf bool

	Layers []LayerResult

	Phi   float64
	Mn    float64 // kN-m
	PhiMn float64 // kN-m

	IsTensionControlled bool
	Message             string
}

func (in SectionInput) validate() error {
	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Errorf("invalid section dimensions: b=%.2f, h=%.2f", in.Width, in.Height)
	}
	if in.Fc <= 0 || in.Fy <= 0 {
		return fmt.Errorf("invalid material properties: f'c=%.2f, fy=%.2f", in.Fc, in.Fy)
	}
	if len(in.Layers) == 0 {
		return errors.New("section must have at least one reinforcement layer")
	}
	for i, l := range in.Layers {
		if l.Area <= 0 {
			return fmt.Errorf("reinforcement layer %d must have positive area", i+1)
		}
		if l.Y < 0 || l.Y > in.Height {
			return fmt.Errorf("reinforcement layer %d lies outside the section (y=%.1f)", i+1, l.Y)
		}
	}
	return nil
}

func (in SectionInput) depth(l Layer) float64 {
	if in.Bending == Negative {
		return l.Y
	}
	return in.Height - l.Y
}

// state evaluates every layer for a neutral axis depth c and returns the net
// axial force (kN, compression positive).
func (in SectionInput) state(c, beta1 float64) (net, cc float64, layers []LayerResult) {
	a := math.Min(beta1*c, in.Height)
	cc = 0.85 * in.Fc * in.Width * a / 1000
	net = cc

	epsilonY := in.Fy / nscp.Es
	layers = make([]LayerResult, len(in.Layers))
	for i, l := range in.Layers {
		d := in.depth(l)
		strain := nscp.EpsilonCU * (c - d) / c
		stress := math.Max(math.Min(strain*nscp.Es, in.Fy), -in.Fy)
		force := l.Area * stress / 1000
		if strain >= 0 && d <= a {
			force = l.Area * (stress - 0.85*in.Fc) / 1000
		}
		layers[i] = LayerResult{
			Layer:      l,
			Depth:      d,
			Strain:     strain,
			Stress:     stress,
			Force:      force,
			IsTension:  strain < 0,
			HasYielded: math.Abs(strain) >= epsilonY,
		}
		net += force
	}
	return net, cc, layers
}

// Analyze finds the neutral axis by bisection on force equilibrium and
// returns the nominal and design moment capacity.
func Analyze(in SectionInput) (*Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res := &Result{Beta1: nscp.Beta1(in.Fc)}

	lo, hi := in.Height*1e-6, in.Height
	if net, _, _ := in.state(hi, res.Beta1); net < 0 {
		return nil, fmt.Errorf("tension steel exceeds what the full section can balance")
	}
	for iter := 0; iter < 200 && hi-lo > 1e-9; iter++ {
		mid := (lo + hi) / 2
		net, _, _ := in.state(mid, res.Beta1)
		if net > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	c := (lo + hi) / 2
	_, cc, layers := in.state(c, res.Beta1)

	res.C = c
	res.A = math.Min(res.Beta1*c, in.Height)
	res.Cc = cc
	res.Layers = layers

	var tensionMoment, mn float64
	mn = -cc * res.A / 2
	for _, l := range layers {
		mn -= l.Force * l.Depth
		if l.IsTension {
			res.T += -l.Force
			res.As += l.Area
			tensionMoment += l.Area * l.Depth
			res.Dt = math.Max(res.Dt, l.Depth)
		} else {
			res.Cs += l.Force
		}
	}
	if res.As == 0 {
		return nil, ErrNoTensionSteel
	}
	res.D = tensionMoment / res.As

	res.EpsilonT = nscp.EpsilonCU * (res.Dt - c) / c
	res.Phi = nscp.Phi(res.EpsilonT, in.Fy)
	epsilonY := in.Fy / nscp.Es
	res.IsTensionControlled = res.EpsilonT >= epsilonY+0.003
	res.Mn = mn / 1000
	res.PhiMn = res.Phi * res.Mn

	res.RhoMin = nscp.RhoMin(in.Fc, in.Fy)
	res.Rho = res.As / (in.Width * res.D)
	res.MeetsMinReinf = res.Rho >= res.RhoMin

	switch {
	case res.IsTensionControlled:
		res.Message = "Section is tension-controlled (εt ≥ εy + 0.003)"
	case res.EpsilonT >= epsilonY:
		res.Message = "Section is in transition zone"
	default:
		res.Message = "Section is compression-controlled (εt < εy)"
	}
	if !res.MeetsMinReinf {
		res.Message += " | WARNING: Below minimum reinforcement"
	}
	return res, nil
}

// FromLayout builds the section of one span from the layouts of its two
// faces. Bars on the same level are merged into one layer. Either layout may
// be nil.
func FromLayout(widthCm, heightCm float64, top, bottom *layout.Result, fc, fy float64, bending Bending) SectionInput {
	in := SectionInput{
		Width:   widthCm * 10,
		Height:  heightCm * 10,
		Fc:      fc,
		Fy:      fy,
		Bending: bending,
	}

	byLevel := map[float64]*Layer{}
	add := func(face string, bars []layout.Bar, dbCm float64) {
		area := rebar.AreaCm2(dbCm) * 100
		for _, b := range bars {
			y := math.Round(b.Y*100) / 10 // mm, 0.1 mm resolution
			l, ok := byLevel[y]
			if !ok {
				l = &Layer{Y: y, Label: face}
				byLevel[y] = l
			}
			l.Area += area
		}
	}
	for _, r := range []struct {
		name string
		res  *layout.Result
	}{{"top", top}, {"bottom", bottom}} {
		if r.res == nil {
			continue
		}
		add(r.name, r.res.Main, r.res.MainDiameterCm)
		add(r.name, r.res.L1, r.res.L1DiameterCm)
		add(r.name, r.res.L2, r.res.L2DiameterCm)
	}

	levels := make([]float64, 0, len(byLevel))
	for y := range byLevel {
		levels = append(levels, y)
	}
	sort.Float64s(levels)
	for _, y := range levels {
		in.Layers = append(in.Layers, *byLevel[y])
	}
	return in
}

// Check compares a design capacity with the governing factored moment.
type Check struct {
	Mu          float64 // kN-m
	Combination nscp.LoadCombination
	PhiMn       float64 // kN-m
	Ratio       float64 // Mu / φMn
	OK          bool
}

// CheckMoments factors m, picks the governing combination and compares it
// with the capacity in res.
func CheckMoments(res *Result, m nscp.LoadMoments) Check {
	mu, lc := nscp.GoverningMoment(m, nscp.CombinationsFor(m))
	c := Check{Mu: mu, Combination: lc, PhiMn: res.PhiMn}
	switch {
	case res.PhiMn > 0:
		c.Ratio = mu / res.PhiMn
	case mu > 0:
		c.Ratio = math.Inf(1)
	}
	c.OK = mu <= res.PhiMn
	return c
}
