package signal

// ---------------------------------------------------------------------------
// Derived attributes — pure rules over raw (non-standardized) quantities
// ---------------------------------------------------------------------------

// Planet-size categories, inclusive on the upper bound of each band.
const (
	PlanetSubEarth    = "Sub-Earth"
	PlanetEarthLike   = "Earth-like"
	PlanetSuperEarth  = "Super-Earth"
	PlanetMiniNeptune = "Mini-Neptune"
	PlanetGiant       = "Giant"
)

// Host-star categories by effective temperature, strictly-less-than bounds.
const (
	StarMDwarf = "M-dwarf"
	StarKDwarf = "K-dwarf"
	StarGDwarf = "G-dwarf"
	StarFDwarf = "F-dwarf"
	StarADwarf = "A-dwarf"
)

// Habitability scoring bands.  The graded policy grants partial credit for
// the extended band when the strict band is missed; the total is capped at
// 100.
const (
	tempStrictLo, tempStrictHi = 273.0, 373.0 // liquid-water range [K]
	tempWideLo, tempWideHi     = 200.0, 400.0
	radStrictLo, radStrictHi   = 0.8, 1.5 // [Earth radii]
	radWideLo, radWideHi       = 0.5, 2.0
	insolStrictLo, insolStrictHi = 0.25, 1.5 // [Earth flux]
	insolWideLo, insolWideHi     = 0.1, 4.0
)

// HabitabilityScore computes the additive 0–100 habitability score from raw
// equilibrium temperature, planet radius, and insolation flux.
//
//	temperature: +40 strict band, else +20 extended band
//	radius:      +30 strict band, else +15 extended band
//	insolation:  +30 strict band, else +10 extended band
func HabitabilityScore(teq, radius, insol float64) float64 {
	var score float64

	switch {
	case teq >= tempStrictLo && teq <= tempStrictHi:
		score += 40
	case teq >= tempWideLo && teq <= tempWideHi:
		score += 20
	}

	switch {
	case radius >= radStrictLo && radius <= radStrictHi:
		score += 30
	case radius >= radWideLo && radius <= radWideHi:
		score += 15
	}

	switch {
	case insol >= insolStrictLo && insol <= insolStrictHi:
		score += 30
	case insol >= insolWideLo && insol <= insolWideHi:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// PlanetCategory maps a planet radius in Earth radii to its size category.
// It is a total function: every real input maps to exactly one category.
func PlanetCategory(radius float64) string {
	switch {
	case radius < 0.8:
		return PlanetSubEarth
	case radius <= 1.25:
		return PlanetEarthLike
	case radius <= 2.0:
		return PlanetSuperEarth
	case radius <= 4.0:
		return PlanetMiniNeptune
	default:
		return PlanetGiant
	}
}

// StarCategory maps a stellar effective temperature in Kelvin to the host
// star's spectral category.
func StarCategory(teff float64) string {
	switch {
	case teff < 3700:
		return StarMDwarf
	case teff < 5200:
		return StarKDwarf
	case teff < 6000:
		return StarGDwarf
	case teff < 7500:
		return StarFDwarf
	default:
		return StarADwarf
	}
}

// Attributes bundles the three derived attributes for one signal.
type Attributes struct {
	HabitabilityScore float64
	PlanetType        string
	StarType          string
}

// DeriveAttributes computes all derived attributes from a raw feature vector.
// No failure modes; inputs are pre-defaulted by Build.
func DeriveAttributes(v FeatureVector) Attributes {
	return Attributes{
		HabitabilityScore: HabitabilityScore(v.EquilibriumTemp(), v.Radius(), v.Insolation()),
		PlanetType:        PlanetCategory(v.Radius()),
		StarType:          StarCategory(v.StellarTeff()),
	}
}
