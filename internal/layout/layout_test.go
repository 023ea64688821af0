package layout

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/alexiusacademia/gorcd/internal/rebar"
	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFaceLayout_TwoBarsOneRow(t *testing.T) {
	in := FaceInput{
		Face:     development.Top,
		WidthCm:  30,
		HeightCm: 50,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 2, Diameter: "5/8"},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Rows)
	assert.GreaterOrEqual(t, res.Cols, 2)
	require.Len(t, res.Main, 2)
	assert.InDelta(t, 0, res.Main[0].Z+res.Main[1].Z, 1e-9)
	assert.NotZero(t, res.Main[0].Z)
	assert.Empty(t, res.L1)
	assert.Empty(t, res.L2)
	assert.Empty(t, res.Shortfalls)

	// top face: first row hangs from the top
	assert.InDelta(t, 50-4-1.588/2, res.Main[0].Y, 1e-9)
}

func TestComputeFaceLayout_TooNarrowFails(t *testing.T) {
	in := FaceInput{
		Face:     development.Bottom,
		WidthCm:  15,
		HeightCm: 50,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 5, Diameter: "1"},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	assert.Nil(t, res)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.NotEmpty(t, f.Reason)
}

func TestComputeFaceLayout_NoUsableWidth(t *testing.T) {
	in := FaceInput{
		WidthCm:  10,
		HeightCm: 40,
		CoverCm:  4,
		Stirrups: development.StirrupsSection{Diameter: "3/8", Loops: 1},
		Main:     development.SteelMeta{Qty: 2, Diameter: "1"},
	}

	_, err := ComputeFaceLayout(in, settings.Default())
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Contains(t, f.Reason, "no usable width")
}

func TestComputeFaceLayout_Degenerate(t *testing.T) {
	s := settings.Default()
	for _, in := range []FaceInput{
		{WidthCm: 30, HeightCm: 50, Main: development.SteelMeta{Qty: 0, Diameter: "5/8"}},
		{WidthCm: 0, HeightCm: 50, Main: development.SteelMeta{Qty: 2, Diameter: "5/8"}},
		{WidthCm: 30, HeightCm: -1, Main: development.SteelMeta{Qty: 2, Diameter: "5/8"}},
	} {
		res, err := ComputeFaceLayout(in, s)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	}
}

func TestComputeFaceLayout_StirrupWrapNarrowsGrid(t *testing.T) {
	s := settings.Default()
	bare := FaceInput{WidthCm: 30, HeightCm: 50, CoverCm: 4, Main: development.SteelMeta{Qty: 2, Diameter: "5/8"}}
	wrapped := bare
	wrapped.Stirrups = development.StirrupsSection{Diameter: "3/8", Loops: 2}

	a, err := ComputeFaceLayout(bare, s)
	require.NoError(t, err)
	b, err := ComputeFaceLayout(wrapped, s)
	require.NoError(t, err)

	assert.InDelta(t, 4+2*0.953, b.CoverEffCm, 1e-9)
	assert.InDelta(t, a.PitchCm-2*2*0.953, b.PitchCm, 1e-9)
}

func TestComputeFaceLayout_CutoffsFillHoles(t *testing.T) {
	in := FaceInput{
		Face:     development.Bottom,
		WidthCm:  30,
		HeightCm: 50,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 3, Diameter: "5/8"},
		Cutoff:   CutoffDemand{L1Qty: 2, L2Qty: 1, L1DiameterCm: 1.588, L2DiameterCm: 1.27},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	require.NoError(t, err)

	// 6 bars: 4 columns fit in 30 cm, so one row of 4 is not enough
	assert.Equal(t, 2, res.Rows)
	assert.Len(t, res.Main, 3)
	assert.Len(t, res.L1, 2)
	assert.Len(t, res.L2, 1)
	assert.Empty(t, res.Shortfalls)
	assertNoSharedSlots(t, res)

	// main fills the outer pair of row 0 first
	assert.Equal(t, 0, res.Main[0].Row)
	assert.Equal(t, 0, res.Main[0].Col)
	assert.Equal(t, res.Cols-1, res.Main[1].Col)
}

func TestComputeFaceLayout_OddColumnsFillCentreLast(t *testing.T) {
	in := FaceInput{
		WidthCm:  40,
		HeightCm: 50,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 3, Diameter: "5/8"},
		Override: development.LayoutOverride{Rows: 1, Cols: 3},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	require.NoError(t, err)
	require.Len(t, res.Main, 3)
	assert.Equal(t, []int{0, 2, 1}, []int{res.Main[0].Col, res.Main[1].Col, res.Main[2].Col})
	assert.InDelta(t, 0, res.Main[2].Z, 1e-9)
}

func TestComputeFaceLayout_ShortfallKeepsL1First(t *testing.T) {
	in := FaceInput{
		WidthCm:  25,
		HeightCm: 22, // two rows of 1" bars at most
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 3, Diameter: "1"},
		Cutoff:   CutoffDemand{L1Qty: 3, L2Qty: 3, L1DiameterCm: 2.54, L2DiameterCm: 2.54},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	require.NoError(t, err)

	assert.Len(t, res.Main, 3)
	require.NotEmpty(t, res.Shortfalls)
	if len(res.L2) > 0 {
		assert.Len(t, res.L1, 3, "L2 only receives slots once L1 is complete")
	}
	for _, sf := range res.Shortfalls {
		assert.Less(t, sf.Placed, sf.Requested)
		assert.NotEmpty(t, sf.String())
	}
	assertNoSharedSlots(t, res)
}

func TestComputeFaceLayout_ForcedOverrides(t *testing.T) {
	in := FaceInput{
		WidthCm:  40,
		HeightCm: 60,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 4, Diameter: "3/4"},
		Override: development.LayoutOverride{Rows: 2, Cols: 2},
	}

	res, err := ComputeFaceLayout(in, settings.Default())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Cols)
	assert.InDelta(t, res.GoverningDiameterCm+res.MinSpacingCm, res.RowPitchCm, 1e-9)
}

func TestComputeFaceLayout_ForcedRowsRespectMaxRows(t *testing.T) {
	s := settings.Default()
	s.MaxRowsPerFace = 1
	in := FaceInput{
		WidthCm:  40,
		HeightCm: 60,
		CoverCm:  4,
		Main:     development.SteelMeta{Qty: 2, Diameter: "5/8"},
		Override: development.LayoutOverride{Rows: 3},
	}

	res, err := ComputeFaceLayout(in, s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, []int{1}, rowChoices(in.Override, s))
}

func TestSlotOrder(t *testing.T) {
	assert.Equal(t, []int{0}, slotOrder(1))
	assert.Equal(t, []int{0, 1}, slotOrder(2))
	assert.Equal(t, []int{0, 4, 1, 3, 2}, slotOrder(5))
	assert.Equal(t, []int{0, 5, 1, 4, 2, 3}, slotOrder(6))
}

var diameters = []rebar.Diameter{"3/8", "1/2", "5/8", "3/4", "1", "1-1/8", "1-3/8", "12mm"}

func TestComputeFaceLayout_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 1500; trial++ {
		s := settings.Default()
		s.UsePracticalMin = rng.Intn(2) == 0
		s.MaxRowsPerFace = 1 + rng.Intn(3)

		face := development.Top
		if rng.Intn(2) == 0 {
			face = development.Bottom
		}
		in := FaceInput{
			Face:     face,
			WidthCm:  15 + rng.Float64()*60,
			HeightCm: 25 + rng.Float64()*75,
			CoverCm:  2 + rng.Float64()*4,
			Stirrups: development.StirrupsSection{Diameter: "3/8", Loops: rng.Intn(3)},
			Main:     development.SteelMeta{Qty: 1 + rng.Intn(8), Diameter: diameters[rng.Intn(len(diameters))]},
		}
		if rng.Intn(2) == 0 {
			in.Cutoff.L1Qty = 1 + rng.Intn(3)
			in.Cutoff.L1DiameterCm = diameters[rng.Intn(len(diameters))].Cm(s)
		}
		if rng.Intn(3) == 0 {
			in.Cutoff.L2Qty = 1 + rng.Intn(3)
			in.Cutoff.L2DiameterCm = diameters[rng.Intn(len(diameters))].Cm(s)
		}

		res, err := ComputeFaceLayout(in, s)
		if err != nil {
			var f *Failure
			require.ErrorAs(t, err, &f, "trial %d", trial)
			require.NotEmpty(t, f.Reason)
			require.Nil(t, res)
			continue
		}

		require.GreaterOrEqual(t, res.Rows, 1)
		require.LessOrEqual(t, res.Rows, s.MaxRowsPerFace)

		// capacity conservation
		require.Len(t, res.Main, in.Main.Qty, "trial %d", trial)
		require.LessOrEqual(t, len(res.L1)+len(res.L2), in.Cutoff.L1Qty+in.Cutoff.L2Qty)
		if len(res.L2) > 0 {
			require.Len(t, res.L1, in.Cutoff.L1Qty, "trial %d: L2 placed before L1 was complete", trial)
		}

		// feasibility soundness
		db := res.GoverningDiameterCm
		lo := res.CoverEffCm + db/2
		hi := in.HeightCm - res.CoverEffCm - db/2
		rows := map[int][]float64{}
		for _, b := range allBars(res) {
			require.GreaterOrEqual(t, b.Y, lo-1e-9, "trial %d", trial)
			require.LessOrEqual(t, b.Y, hi+1e-9, "trial %d", trial)
			rows[b.Row] = append(rows[b.Row], b.Z)
		}
		for _, zs := range rows {
			sort.Float64s(zs)
			for i := 1; i < len(zs); i++ {
				require.GreaterOrEqual(t, zs[i]-zs[i-1], db+res.MinSpacingCm-1e-9, "trial %d", trial)
			}
		}

		// symmetry of the column grid
		if res.Cols > 1 {
			first := -(in.WidthCm/2 - res.CoverEffCm - db/2)
			assert.InDelta(t, first+float64(res.Cols-1)*res.PitchCm, -first, 1e-6)
		}
		assertNoSharedSlots(t, res)
	}
}

func allBars(r *Result) []Bar {
	out := append([]Bar(nil), r.Main...)
	out = append(out, r.L1...)
	return append(out, r.L2...)
}

func assertNoSharedSlots(t *testing.T, r *Result) {
	t.Helper()
	seen := map[[2]int]bool{}
	for _, b := range allBars(r) {
		key := [2]int{b.Row, b.Col}
		require.False(t, seen[key], "slot %v used twice", key)
		seen[key] = true
		require.False(t, math.IsNaN(b.Z) || math.IsNaN(b.Y))
	}
}
