package model

// OrbitClass is the coarse orbit classification derived from mean
// inclination: below 10° a satellite is treated as geostationary-like,
// at or above as inclined-geosynchronous.
type OrbitClass string

const (
	ClassGSO  OrbitClass = "GSO"
	ClassIGSO OrbitClass = "IGSO"
)

// HealthTier buckets an overall health score for display.
type HealthTier string

const (
	HealthExcellent      HealthTier = "Excellent"
	HealthGood           HealthTier = "Good"
	HealthFair           HealthTier = "Fair"
	HealthNeedsAttention HealthTier = "Needs Attention"
)

// HealthReport is the composite operational-health assessment for one
// satellite over one observation window. Reports are produced fresh on each
// assessment call and have no identity beyond satellite name plus window.
//
// Pointer-valued sub-scores are nil when the corresponding input was
// unavailable (no resolvable inclination target, no drift series); the
// overall score reweights across whatever subset is present.
type HealthReport struct {
	Satellite string
	Class     OrbitClass

	OverallScore float64
	Tier         HealthTier

	InclinationScore *float64
	MaintenanceScore float64
	UniformityScore  float64
	DriftScore       *float64

	TargetInclinationDeg    *float64
	MeanInclinationDeg      float64
	InclinationStdDeg       float64
	InclinationDeviationDeg *float64

	MeanDriftDegPerDay    *float64
	CurrentDriftDegPerDay *float64
	DriftStatus           string

	ManeuverCount     int
	ManeuversPerMonth float64
	UniformityCoV     *float64

	Pattern PatternSet

	// Remarks are ordered human-readable findings, derived from the scores
	// above rather than stored separately.
	Remarks []string
}
