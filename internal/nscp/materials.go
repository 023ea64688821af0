package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Beta1 factors for equivalent rectangular stress block
	// Section 422.2.2.4.3
	Beta1Max = 0.85 // for f'c <= 28 MPa
	Beta1Min = 0.65 // minimum value

	// Strain limits
	EpsilonCU = 0.003 // Ultimate concrete strain (Section 422.2.2.1)

	// Strength reduction factors (Section 421.2.2)
	PhiFlexure     = 0.90 // Tension-controlled sections
	PhiCompression = 0.65 // Compression-controlled (tied)

	// Modulus of elasticity for steel (Section 420.2.2.2)
	Es = 200000.0 // MPa

	// Default materials for detailing when a development does not say otherwise
	DefaultFc = 21.0  // MPa
	DefaultFy = 420.0 // MPa
)

// Beta1 calculates the factor for equivalent rectangular stress block
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	// β1 = 0.85 - 0.05(f'c - 28)/7 for f'c > 28 MPa
	beta1 := Beta1Max - 0.05*(fc-28)/7
	return math.Max(beta1, Beta1Min)
}

// Phi calculates the strength reduction factor based on strain
func Phi(epsilonT float64, fy float64) float64 {
	epsilonTY := fy / Es

	if epsilonT >= epsilonTY+0.003 {
		// Tension-controlled
		return PhiFlexure
	} else if epsilonT <= epsilonTY {
		// Compression-controlled
		return PhiCompression
	}
	// Transition zone
	return PhiCompression + (PhiFlexure-PhiCompression)*(epsilonT-epsilonTY)/0.003
}

// RhoMin calculates minimum reinforcement ratio
// NSCP 2015 Section 409.6.1.2
func RhoMin(fc, fy float64) float64 {
	// ρmin = max(√f'c / 4fy, 1.4/fy)
	rho1 := math.Sqrt(fc) / (4 * fy)
	rho2 := 1.4 / fy
	return math.Max(rho1, rho2)
}
