package nscp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevelopmentLength_SmallBar(t *testing.T) {
	// 16 mm bar, f'c 21, fy 420, bottom: 420*1.0/(2.1*√21)*16 = 698.3 mm
	got := DevelopmentLength(16, 21, 420, false)
	assert.InDelta(t, 420.0/(2.1*math.Sqrt(21))*16, got, 1e-9)
}

func TestDevelopmentLength_TopBarFactor(t *testing.T) {
	bottom := DevelopmentLength(25, 28, 420, false)
	top := DevelopmentLength(25, 28, 420, true)
	assert.InDelta(t, bottom*PsiTop, top, 1e-9)
}

func TestDevelopmentLength_Floor(t *testing.T) {
	assert.Equal(t, MinStraightLdMm, DevelopmentLength(6, 40, 275, false))
	assert.Zero(t, DevelopmentLength(0, 21, 420, false))
}

func TestHookDevelopmentLength(t *testing.T) {
	got := HookDevelopmentLength(19.05, 21, 420)
	assert.InDelta(t, 0.24*420*19.05/math.Sqrt(21), got, 1e-9)

	// small bars hit the 150 mm floor
	assert.Equal(t, MinHookLdhMm, HookDevelopmentLength(6, 35, 280))
}

func TestStandardHookTail(t *testing.T) {
	assert.InDelta(t, 12*15.875, StandardHookTail(15.875), 1e-9)
}

func TestBeta1(t *testing.T) {
	assert.Equal(t, Beta1Max, Beta1(21))
	assert.InDelta(t, 0.80, Beta1(35), 1e-9)
	assert.Equal(t, Beta1Min, Beta1(100))
}

func TestPhi(t *testing.T) {
	assert.Equal(t, PhiFlexure, Phi(0.006, 420))
	assert.Equal(t, PhiCompression, Phi(0.001, 420))
	mid := Phi(0.0036, 420)
	assert.Greater(t, mid, PhiCompression)
	assert.Less(t, mid, PhiFlexure)
}

func TestAnchorageTable(t *testing.T) {
	tbl := AnchorageTable{Fc: 21, Fy: 420}

	assert.Equal(t, HookDevelopmentLength(15.88, 21, 420), tbl.LengthMm(15.88, true, true))
	assert.Equal(t, DevelopmentLength(15.88, 21, 420, true), tbl.LengthMm(15.88, false, true))
	assert.Greater(t, tbl.LengthMm(15.88, false, true), tbl.LengthMm(15.88, false, false))
}
