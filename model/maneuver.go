package model

import "time"

// ManeuverEvent is one detected station-keeping maneuver. Events are
// externally supplied evidence; the analysis code treats the set as
// append-only and never mutates it. An event can carry both class flags when
// a combined correction was detected.
type ManeuverEvent struct {
	Epoch time.Time

	// EastWest marks an orbit-plane (longitude-keeping) correction.
	EastWest bool
	// NorthSouth marks an inclination-keeping correction.
	NorthSouth bool
}

// PatternConfidence grades how much the inter-maneuver interval history can
// be trusted when predicting the next maneuver.
type PatternConfidence int

const (
	ConfidenceNone PatternConfidence = iota
	ConfidenceVeryLow
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

func (c PatternConfidence) String() string {
	switch c {
	case ConfidenceVeryLow:
		return "very_low"
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "none"
	}
}

// PatternAnalysis is the derived maneuver cadence for one maneuver class.
// It is a pure function result recomputed on every analysis run; the
// confidence tier is derived from interval dispersion, never stored.
type PatternAnalysis struct {
	EventCount int

	// ExpectedIntervalDays is the median inter-event gap when two or more
	// gaps exist. With a single event it falls back to the time remaining
	// in the observation window, an explicitly low-confidence placeholder.
	// Zero when EventCount is zero.
	ExpectedIntervalDays float64

	// IntervalsDays are the sorted inter-event gaps, empty with fewer than
	// two events.
	IntervalsDays []float64

	LastEvent     time.Time
	DaysSinceLast float64
	Overdue       bool
	Confidence    PatternConfidence
}

// PatternSet is the per-class split of one analysis run. Orbit-plane (E-W)
// and inclination (N-S) maneuvers follow materially different cadences, so
// overdue detection is computed separately for each.
type PatternSet struct {
	Overall    PatternAnalysis
	EastWest   PatternAnalysis
	NorthSouth PatternAnalysis
}
