package model

// ServiceRequirement is the read-only service target for one satellite:
// where it should sit and how tightly it must hold position. Different
// constellations publish inclination targets in different shapes (a single
// value, a value with tolerance, or an allowed range), so all three forms
// are carried and TargetInclination resolves between them.
type ServiceRequirement struct {
	// OrbitType tags the intended orbit class, e.g. "GSO", "GEO", "IGSO".
	OrbitType string

	LongitudeDeg    float64
	LongitudeTolDeg float64

	// InclinationDeg is the plain fixed-value form.
	InclinationDeg *float64
	// InclinationTargetDeg is the fixed value under its alternate key, as
	// published with an explicit tolerance.
	InclinationTargetDeg *float64
	InclinationTolDeg    *float64
	// InclinationRangeDeg is the allowed [low, high] band; its midpoint is
	// the resolved target.
	InclinationRangeDeg *[2]float64

	ArgPerigeeDeg    *float64
	ArgPerigeeTolDeg *float64

	SMAKm    float64
	SMATolKm float64
	EccMax   float64
}

// TargetInclination resolves the target inclination across the supported
// formats: fixed value first, then the alternate fixed-value key, then the
// midpoint of a target range. ok is false when none is present.
func (r ServiceRequirement) TargetInclination() (float64, bool) {
	switch {
	case r.InclinationDeg != nil:
		return *r.InclinationDeg, true
	case r.InclinationTargetDeg != nil:
		return *r.InclinationTargetDeg, true
	case r.InclinationRangeDeg != nil:
		return (r.InclinationRangeDeg[0] + r.InclinationRangeDeg[1]) / 2.0, true
	default:
		return 0, false
	}
}
