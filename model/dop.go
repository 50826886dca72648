package model

// QualityTier classifies a GDOP value for display.
type QualityTier string

const (
	QualityExcellent QualityTier = "Excellent"
	QualityGood      QualityTier = "Good"
	QualityModerate  QualityTier = "Moderate"
	QualityFair      QualityTier = "Fair"
	QualityPoor      QualityTier = "Poor"
)

// DOPResult holds the dilution-of-precision family for one observer/instant.
// The values satisfy GDOP² = PDOP² + TDOP² and PDOP² = HDOP² + VDOP² up to
// numerical tolerance; results violating that are rejected at computation
// time and never reach callers.
type DOPResult struct {
	GDOP float64
	PDOP float64
	HDOP float64
	VDOP float64
	TDOP float64

	// VisibleCount is the number of satellites above the elevation mask
	// that contributed rows to the geometry matrix.
	VisibleCount int

	Quality QualityTier
}
