package capacity

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/layout"
	"github.com/alexiusacademia/gorcd/internal/nscp"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singly(bending Bending, y float64) SectionInput {
	return SectionInput{
		Width:   300,
		Height:  500,
		Fc:      21,
		Fy:      420,
		Layers:  []Layer{{Y: y, Area: 1500}},
		Bending: bending,
	}
}

func TestAnalyze_SinglyReinforced(t *testing.T) {
	// a = As fy / (0.85 f'c b) = 117.65 mm, Mn = As fy (d - a/2)
	res, err := Analyze(singly(Positive, 60))
	require.NoError(t, err)

	assert.InDelta(t, 117.647, res.A, 1e-3)
	assert.InDelta(t, 138.408, res.C, 1e-3)
	assert.InDelta(t, 440, res.D, 1e-9)
	assert.InDelta(t, 240.141, res.Mn, 1e-3)
	assert.InDelta(t, 0.90, res.Phi, 1e-12)
	assert.InDelta(t, 0.9*res.Mn, res.PhiMn, 1e-9)
	assert.True(t, res.IsTensionControlled)
	assert.True(t, res.MeetsMinReinf)
	assert.InDelta(t, res.Cc, res.T, 1e-3)

	require.Len(t, res.Layers, 1)
	assert.True(t, res.Layers[0].IsTension)
	assert.True(t, res.Layers[0].HasYielded)
}

func TestAnalyze_NegativeBendingMirrors(t *testing.T) {
	pos, err := Analyze(singly(Positive, 60))
	require.NoError(t, err)
	neg, err := Analyze(singly(Negative, 440))
	require.NoError(t, err)

	assert.InDelta(t, pos.Mn, neg.Mn, 1e-6)
	assert.InDelta(t, pos.C, neg.C, 1e-6)
}

func TestAnalyze_CompressionSteelIsInEquilibrium(t *testing.T) {
	in := singly(Positive, 60)
	in.Layers = append(in.Layers, Layer{Y: 440, Area: 400})

	res, err := Analyze(in)
	require.NoError(t, err)

	assert.InDelta(t, res.T, res.Cc+res.Cs, 1e-3)
	assert.Greater(t, res.Cs, 0.0)
	assert.InDelta(t, 1500, res.As, 1e-9)

	single, err := Analyze(singly(Positive, 60))
	require.NoError(t, err)
	assert.Greater(t, res.Mn, single.Mn)
	assert.Less(t, res.C, single.C)
}

func TestAnalyze_CompressionControlled(t *testing.T) {
	in := singly(Positive, 60)
	in.Layers[0].Area = 20000

	res, err := Analyze(in)
	require.NoError(t, err)
	assert.InDelta(t, 0.65, res.Phi, 1e-12)
	assert.False(t, res.IsTensionControlled)
	assert.Contains(t, res.Message, "compression-controlled")
}

func TestAnalyze_BelowMinimum(t *testing.T) {
	in := singly(Positive, 60)
	in.Layers[0].Area = 200

	res, err := Analyze(in)
	require.NoError(t, err)
	assert.False(t, res.MeetsMinReinf)
	assert.Contains(t, res.Message, "Below minimum")
}

func TestAnalyze_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*SectionInput)
	}{
		{"zero width", func(in *SectionInput) { in.Width = 0 }},
		{"negative height", func(in *SectionInput) { in.Height = -1 }},
		{"no fc", func(in *SectionInput) { in.Fc = 0 }},
		{"no layers", func(in *SectionInput) { in.Layers = nil }},
		{"zero area", func(in *SectionInput) { in.Layers[0].Area = 0 }},
		{"outside", func(in *SectionInput) { in.Layers[0].Y = 600 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := singly(Positive, 60)
			tt.mod(&in)
			_, err := Analyze(in)
			assert.Error(t, err)
		})
	}
}

func TestFromLayout(t *testing.T) {
	s := settings.Default()
	stirrups := development.StirrupsSection{Diameter: "3/8", Loops: 1}
	bottom, err := layout.ComputeFaceLayout(layout.FaceInput{
		Face: development.Bottom, WidthCm: 30, HeightCm: 50, CoverCm: 4,
		Stirrups: stirrups,
		Main:     development.SteelMeta{Qty: 3, Diameter: "5/8"},
		Cutoff:   layout.CutoffDemand{L1Qty: 1, L1DiameterCm: rebar.DiameterToCm("5/8", s)},
	}, s)
	require.NoError(t, err)
	top, err := layout.ComputeFaceLayout(layout.FaceInput{
		Face: development.Top, WidthCm: 30, HeightCm: 50, CoverCm: 4,
		Stirrups: stirrups,
		Main:     development.SteelMeta{Qty: 2, Diameter: "5/8"},
	}, s)
	require.NoError(t, err)

	in := FromLayout(30, 50, top, bottom, 21, 420, Positive)
	assert.Equal(t, 300.0, in.Width)
	assert.Equal(t, 500.0, in.Height)

	var total float64
	for i, l := range in.Layers {
		total += l.Area
		if i > 0 {
			assert.Greater(t, l.Y, in.Layers[i-1].Y)
		}
	}
	want := (top.SteelAreaCm2() + bottom.SteelAreaCm2()) * 100
	assert.InDelta(t, want, total, 1e-6)

	pos, err := Analyze(in)
	require.NoError(t, err)
	in.Bending = Negative
	neg, err := Analyze(in)
	require.NoError(t, err)

	// the bottom face carries more steel
	assert.Greater(t, pos.Mn, neg.Mn)
	assert.Greater(t, pos.PhiMn, 0.0)
}

func TestFromLayout_Nil(t *testing.T) {
	in := FromLayout(30, 50, nil, nil, 21, 420, Positive)
	assert.Empty(t, in.Layers)
	_, err := Analyze(in)
	assert.Error(t, err)
}

func TestCheckMoments(t *testing.T) {
	res, err := Analyze(singly(Positive, 60))
	require.NoError(t, err)

	// 1.2(40) + 1.6(25) = 88 kN-m against φMn = 216.1 kN-m
	c := CheckMoments(res, nscp.LoadMoments{Dead: 40, Live: 25})
	assert.InDelta(t, 88.0, c.Mu, 1e-9)
	assert.Equal(t, "2", c.Combination.ID)
	assert.InDelta(t, 88.0/res.PhiMn, c.Ratio, 1e-12)
	assert.True(t, c.OK)

	c = CheckMoments(res, nscp.LoadMoments{Dead: 150, Live: 50})
	assert.InDelta(t, 260.0, c.Mu, 1e-9)
	assert.Greater(t, c.Ratio, 1.0)
	assert.False(t, c.OK)
}

func TestCheckMoments_NoCapacity(t *testing.T) {
	c := CheckMoments(&Result{}, nscp.LoadMoments{Dead: 1})
	assert.True(t, math.IsInf(c.Ratio, 1))
	assert.False(t, c.OK)

	c = CheckMoments(&Result{}, nscp.LoadMoments{})
	assert.Zero(t, c.Ratio)
	assert.True(t, c.OK)
}
