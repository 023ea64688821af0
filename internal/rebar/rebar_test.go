package rebar

import (
	"math"
	"math/rand"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3/4", "3/4"},
		{` 3/4" `, "3/4"},
		{"3 / 4", "3/4"},
		{"1-3/8", "1-3/8"},
		{"1 3/8", "1-3/8"},
		{"1 - 3/8", "1-3/8"},
		{`1 3/8"`, "1-3/8"},
		{"1-3/8in", "1-3/8"},
		{"12 mm", "12mm"},
		{"12MM", "12mm"},
		{"1", "1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestDiameterToCm_Table(t *testing.T) {
	s := settings.Default()

	assert.InDelta(t, 1.588, DiameterToCm("5/8", s), 1e-9)
	assert.InDelta(t, 3.581, DiameterToCm("1 3/8", s), 1e-9)
	assert.InDelta(t, 3.581, DiameterToCm("1-3/8", s), 1e-9)
	assert.InDelta(t, 1.2, DiameterToCm("12 mm", s), 1e-9)
}

func TestDiameterToCm_NonCanonicalTableKey(t *testing.T) {
	s := settings.Default()
	s.RebarDiametersCm = map[string]float64{"1 1/2": 3.9}

	assert.InDelta(t, 3.9, DiameterToCm("1-1/2", s), 1e-9)
}

func TestDiameterToCm_ParsesInches(t *testing.T) {
	s := settings.SteelLayoutSettings{}

	assert.InDelta(t, 0.5*2.54, DiameterToCm("1/2", s), 1e-9)
	assert.InDelta(t, 1.375*2.54, DiameterToCm("1 3/8", s), 1e-9)
	assert.InDelta(t, 0.875*2.54, DiameterToCm("0.875", s), 1e-9)
	assert.InDelta(t, 1.6, DiameterToCm("16mm", s), 1e-9)
}

func TestDiameterToCm_Fallback(t *testing.T) {
	s := settings.Default()
	for _, tok := range []string{"", "abc", "0", "-1", "1/0", "0mm", "nan", "inf", "1e400", "3/", "1-"} {
		t.Run(tok, func(t *testing.T) {
			assert.Equal(t, FallbackDiameterCm, DiameterToCm(tok, s))
			_, ok := Resolve(tok, s)
			assert.False(t, ok)
		})
	}
}

func TestResolve_ReportsKnownTokens(t *testing.T) {
	s := settings.Default()
	for _, tok := range []string{"3/4", "5/8", `1"`, "16mm", "0.5"} {
		cm, ok := Resolve(tok, s)
		assert.True(t, ok, tok)
		assert.Equal(t, DiameterToCm(tok, s), cm, tok)
	}
}

func TestDiameterToCm_TotalOverRandomStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune(`0123456789/- ."mnMiØe+`)
	s := settings.Default()

	for trial := 0; trial < 2000; trial++ {
		n := rng.Intn(10)
		buf := make([]rune, n)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		got := DiameterToCm(string(buf), s)
		require.False(t, math.IsNaN(got) || math.IsInf(got, 0), "token %q gave %v", string(buf), got)
		require.Greater(t, got, 0.0, "token %q", string(buf))
	}
}

func TestDiameter_UnmarshalText(t *testing.T) {
	var d Diameter
	require.NoError(t, d.UnmarshalText([]byte(`1 3/8"`)))
	assert.Equal(t, Diameter("1-3/8"), d)
	assert.False(t, d.IsZero())
	assert.InDelta(t, 3.581, d.Cm(settings.Default()), 1e-9)
}

func TestMinClearSpacingCm(t *testing.T) {
	s := settings.Default() // dag 2.5 -> 3.25

	assert.InDelta(t, 3.25, MinClearSpacingCm(1.588, s), 1e-9)
	assert.InDelta(t, 3.581, MinClearSpacingCm(3.581, s), 1e-9)

	s.DagCm = 1.0
	assert.InDelta(t, 2.5, MinClearSpacingCm(0.953, s), 1e-9)

	s.UsePracticalMin = true
	assert.InDelta(t, 4.0, MinClearSpacingCm(0.953, s), 1e-9)
	assert.InDelta(t, 4.5, MinClearSpacingCm(4.5, s), 1e-9)
}

func TestMinClearSpacingCm_Monotonic(t *testing.T) {
	for _, practical := range []bool{false, true} {
		s := settings.Default()
		s.UsePracticalMin = practical
		prev := 0.0
		for db := 0.0; db <= 8.0; db += 0.01 {
			got := MinClearSpacingCm(db, s)
			require.GreaterOrEqual(t, got, prev, "db=%.2f practical=%v", db, practical)
			prev = got
		}
	}
}

func TestResolveColumnRange(t *testing.T) {
	s := settings.Default()

	minC, maxC := ResolveColumnRange(25, s)
	assert.Equal(t, 2, minC)
	assert.Equal(t, 4, maxC)

	minC, maxC = ResolveColumnRange(80, s)
	assert.Equal(t, 3, minC)
	assert.Equal(t, 8, maxC)
}

func TestResolveColumnRange_ClampsRule(t *testing.T) {
	s := settings.SteelLayoutSettings{ColumnRules: []settings.ColumnRule{
		{MinBCm: 0, MaxBCm: 0, MinCols: 1, MaxCols: 0},
	}}

	minC, maxC := ResolveColumnRange(30, s)
	assert.Equal(t, 2, minC)
	assert.Equal(t, 2, maxC)
}

func TestResolveColumnRange_NoMatchDefaults(t *testing.T) {
	minC, maxC := ResolveColumnRange(30, settings.SteelLayoutSettings{})
	assert.Equal(t, DefaultMinCols, minC)
	assert.Equal(t, DefaultMaxCols, maxC)
}
