package nscp

import "math"

// Spacing of parallel bars in a layer (Section 425.2.1)
const (
	MinClearSpacingCm      = 2.5 // absolute minimum clear spacing (cm)
	AggregateSpacingFactor = 1.3 // multiplier on the nominal aggregate size
)

// Development length factors (Section 425.4.2.4)
const (
	PsiTop    = 1.3 // top bars: more than 300 mm of fresh concrete below
	PsiNormal = 1.0
	Lambda    = 1.0 // normal-weight concrete
)

// Standard hook geometry (Section 425.3.1)
const (
	HookTailFactor    = 12.0  // 90° hook straight extension, in bar diameters
	MinHookLdhFactor  = 8.0   // ldh >= 8 db
	MinHookLdhMm      = 150.0 // ldh >= 150 mm
	MinStraightLdMm   = 300.0 // ld >= 300 mm
	SmallBarLimitMm   = 19.0  // bars up to 19 mm use the 2.1 divisor
	smallBarDivisor   = 2.1
	largeBarDivisor   = 1.7
	hookLdhMultiplier = 0.24
)

// DevelopmentLength returns the straight development length ld (mm) of a
// deformed bar in tension using the simplified expressions of Section 425.4.2.3.
//
//	ld = (fy ψt ψe / (2.1 λ √f'c)) db   for db <= 19 mm
//	ld = (fy ψt ψe / (1.7 λ √f'c)) db   for larger bars
func DevelopmentLength(dbMm, fc, fy float64, top bool) float64 {
	if dbMm <= 0 || fc <= 0 || fy <= 0 {
		return 0
	}
	psiT := PsiNormal
	if top {
		psiT = PsiTop
	}
	divisor := largeBarDivisor
	if dbMm <= SmallBarLimitMm {
		divisor = smallBarDivisor
	}
	ld := fy * psiT / (divisor * Lambda * math.Sqrt(fc)) * dbMm
	return math.Max(ld, MinStraightLdMm)
}

// HookDevelopmentLength returns ldh (mm) for a standard hook in tension,
// Section 425.4.3.1: ldh = 0.24 fy db / (λ √f'c), not less than 8 db or 150 mm.
func HookDevelopmentLength(dbMm, fc, fy float64) float64 {
	if dbMm <= 0 || fc <= 0 || fy <= 0 {
		return 0
	}
	ldh := hookLdhMultiplier * fy * dbMm / (Lambda * math.Sqrt(fc))
	return math.Max(ldh, math.Max(MinHookLdhFactor*dbMm, MinHookLdhMm))
}

// StandardHookTail returns the straight extension (mm) of a 90° standard hook.
func StandardHookTail(dbMm float64) float64 {
	return HookTailFactor * dbMm
}

// AnchorageTable gives code anchorage lengths for one pair of material
// strengths.
type AnchorageTable struct {
	Fc float64 // MPa
	Fy float64 // MPa
}

// LengthMm returns the anchorage length (mm) of a bar: ldh for a standard
// hook, otherwise the straight development length with the top-bar factor
// applied when top is set.
func (t AnchorageTable) LengthMm(dbMm float64, hook, top bool) float64 {
	if hook {
		return HookDevelopmentLength(dbMm, t.Fc, t.Fy)
	}
	return DevelopmentLength(dbMm, t.Fc, t.Fy, top)
}
