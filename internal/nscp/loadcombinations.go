package nscp

// LoadCombination is a strength design load combination.
// NSCP 2015 Section 203.3.1.
type LoadCombination struct {
	ID          string
	Description string

	Dead       float64 // D
	Live       float64 // L
	Roof       float64 // Lr
	Wind       float64 // W
	Earthquake float64 // E
	Rain       float64 // R
}

// LoadCombinations are the basic combinations of Section 203.3.1.
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// GravityCombinations are the two combinations that govern ordinary floor
// beams carrying dead and live load only.
var GravityCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// LoadMoments holds unfactored moment magnitudes per load type, kN-m.
type LoadMoments struct {
	Dead       float64 `json:"dead,omitempty" yaml:"dead,omitempty"`
	Live       float64 `json:"live,omitempty" yaml:"live,omitempty"`
	Roof       float64 `json:"roof,omitempty" yaml:"roof,omitempty"`
	Wind       float64 `json:"wind,omitempty" yaml:"wind,omitempty"`
	Earthquake float64 `json:"earthquake,omitempty" yaml:"earthquake,omitempty"`
	Rain       float64 `json:"rain,omitempty" yaml:"rain,omitempty"`
}

// IsZero reports whether no load type carries a moment.
func (m LoadMoments) IsZero() bool { return m == LoadMoments{} }

// Lateral reports whether wind or earthquake moments are given.
func (m LoadMoments) Lateral() bool { return m.Wind != 0 || m.Earthquake != 0 }

// Factored returns the factored moment of m under lc.
func (lc LoadCombination) Factored(m LoadMoments) float64 {
	return lc.Dead*m.Dead +
		lc.Live*m.Live +
		lc.Roof*m.Roof +
		lc.Wind*m.Wind +
		lc.Earthquake*m.Earthquake +
		lc.Rain*m.Rain
}

// GoverningMoment returns the largest factored moment of m over combos and
// the combination producing it. Ties keep the earlier combination.
func GoverningMoment(m LoadMoments, combos []LoadCombination) (float64, LoadCombination) {
	var mu float64
	var gov LoadCombination
	for _, lc := range combos {
		if v := lc.Factored(m); v > mu {
			mu, gov = v, lc
		}
	}
	return mu, gov
}

// CombinationsFor picks the combination set for m: the gravity pair unless
// lateral or roof moments are present.
func CombinationsFor(m LoadMoments) []LoadCombination {
	if m.Lateral() || m.Roof != 0 || m.Rain != 0 {
		return LoadCombinations
	}
	return GravityCombinations
}
