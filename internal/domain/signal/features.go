// Package signal contains the domain model for candidate transit signals:
// the fixed-order feature vector the classifier was fitted on, the permissive
// builder that completes partial input with documented defaults, and the pure
// rule engine for derived physical attributes.
package signal

import (
	"math"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
)

// ---------------------------------------------------------------------------
// Feature order
// ---------------------------------------------------------------------------

// Indices into the 20-field feature vector.  The order is the order the
// standardizer and the classifier were fitted on; reordering silently
// corrupts predictions.
const (
	IdxPeriod = iota // koi_period: orbital period [days]
	IdxDuration      // koi_duration: transit duration [hours]
	IdxDepth         // koi_depth: transit depth [ppm]
	IdxRadius        // koi_prad: planet radius [Earth radii]
	IdxTeq           // koi_teq: equilibrium temperature [K]
	IdxInsol         // koi_insol: insolation flux [Earth flux]
	IdxSNR           // koi_model_snr: transit signal-to-noise ratio
	IdxStellarTeff   // koi_steff: stellar effective temperature [K]
	IdxStellarLogg   // koi_slogg: stellar surface gravity [log10(cm/s²)]
	IdxStellarRadius // koi_srad: stellar radius [Solar radii]
	IdxStellarMass   // koi_smass: stellar mass [Solar masses]
	IdxKepmag        // koi_kepmag: Kepler-band apparent magnitude
	IdxFlagNT        // koi_fpflag_nt: not-transit-like flag
	IdxFlagSS        // koi_fpflag_ss: stellar-eclipse flag
	IdxFlagCO        // koi_fpflag_co: centroid-offset flag
	IdxFlagEC        // koi_fpflag_ec: ephemeris-contamination flag
	IdxRA            // ra: right ascension [deg]
	IdxDec           // dec: declination [deg]
	IdxHabitableZone // derived: 1 if koi_insol in [0.25, 1.5], else 0
	IdxScore         // koi_score: disposition confidence score

	// VectorWidth is the fixed feature-vector dimensionality.
	VectorWidth = IdxScore + 1
)

// FieldNames lists the raw column names in vector order.
var FieldNames = [VectorWidth]string{
	"koi_period",
	"koi_duration",
	"koi_depth",
	"koi_prad",
	"koi_teq",
	"koi_insol",
	"koi_model_snr",
	"koi_steff",
	"koi_slogg",
	"koi_srad",
	"koi_smass",
	"koi_kepmag",
	"koi_fpflag_nt",
	"koi_fpflag_ss",
	"koi_fpflag_co",
	"koi_fpflag_ec",
	"ra",
	"dec",
	"habitable_zone",
	"koi_score",
}

// FieldHabitableZone is the one field that is never user-supplied; the
// builder always derives it from the insolation flux.
const FieldHabitableZone = "habitable_zone"

// defaults holds the documented literal substituted for each missing field.
// An input with no fields at all yields an Earth-analog around a Sun-like
// star, which is the deterministic all-defaults baseline.
var defaults = [VectorWidth]float64{
	IdxPeriod:        365.25,
	IdxDuration:      6.0,
	IdxDepth:         500.0,
	IdxRadius:        1.0,
	IdxTeq:           288.0,
	IdxInsol:         1.0,
	IdxSNR:           25.0,
	IdxStellarTeff:   5778.0,
	IdxStellarLogg:   4.44,
	IdxStellarRadius: 1.0,
	IdxStellarMass:   1.0,
	IdxKepmag:        12.0,
	IdxFlagNT:        0,
	IdxFlagSS:        0,
	IdxFlagCO:        0,
	IdxFlagEC:        0,
	IdxRA:            290.0,
	IdxDec:           45.0,
	IdxHabitableZone: 0, // always derived, never defaulted
	IdxScore:         0.5,
}

// DefaultFor returns the documented default for a field name, and whether
// the name is a known field.
func DefaultFor(name string) (float64, bool) {
	for i, n := range FieldNames {
		if n == name {
			return defaults[i], true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// FeatureVector
// ---------------------------------------------------------------------------

// FeatureVector is the complete ordered input to the classifier.  It is a
// value type; copies are cheap and instances are never mutated after Build.
type FeatureVector [VectorWidth]float64

// Values returns the vector as a plain slice for numeric code.
func (v FeatureVector) Values() []float64 {
	out := make([]float64, VectorWidth)
	copy(out, v[:])
	return out
}

// Period returns the orbital period in days.
func (v FeatureVector) Period() float64 { return v[IdxPeriod] }

// Radius returns the planet radius in Earth radii.
func (v FeatureVector) Radius() float64 { return v[IdxRadius] }

// EquilibriumTemp returns the equilibrium temperature in Kelvin.
func (v FeatureVector) EquilibriumTemp() float64 { return v[IdxTeq] }

// Insolation returns the insolation flux in Earth-flux units.
func (v FeatureVector) Insolation() float64 { return v[IdxInsol] }

// StellarTeff returns the stellar effective temperature in Kelvin.
func (v FeatureVector) StellarTeff() float64 { return v[IdxStellarTeff] }

// InHabitableZone reports whether the derived habitable-zone flag is set.
func (v FeatureVector) InHabitableZone() bool { return v[IdxHabitableZone] == 1 }

// habitableZoneFlag derives the binary habitable-zone indicator from the
// insolation flux.
func habitableZoneFlag(insol float64) float64 {
	if insol >= 0.25 && insol <= 1.5 {
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// Build maps a sparse input record to the complete ordered FeatureVector.
// For each field, a caller-supplied value is used verbatim; missing fields
// get their documented defaults.  The habitable-zone flag is always derived
// from the (possibly defaulted) insolation flux and any caller-supplied value
// for it is ignored.
//
// The contract is deliberately permissive: missing fields are never an
// error, so the system always produces some answer. Supplied values must
// be finite; NaN or ±Inf is rejected with a field-level typed error.
func Build(input map[string]float64) (FeatureVector, error) {
	var v FeatureVector
	for i, name := range FieldNames {
		if i == IdxHabitableZone {
			continue
		}
		val, ok := input[name]
		if !ok {
			v[i] = defaults[i]
			continue
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return FeatureVector{}, errors.InvalidFeature(name, "value must be finite")
		}
		v[i] = val
	}
	v[IdxHabitableZone] = habitableZoneFlag(v[IdxInsol])
	return v, nil
}
