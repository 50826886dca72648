package health

import (
	"sort"
	"time"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// Confidence tiering on the coefficient of variation of inter-maneuver gaps.
const (
	highConfidenceCoV   = 0.3
	mediumConfidenceCoV = 0.6
)

// overdueFactor: a class is overdue once the gap since the last maneuver
// exceeds this multiple of the expected interval.
const overdueFactor = 1.5

const hoursPerDay = 24.0

// AnalyzePattern derives maneuver cadence over the observation window,
// split by maneuver class. Orbit-plane (E-W) and inclination (N-S)
// corrections run on materially different schedules, so each class gets its
// own expected interval and overdue flag alongside the combined view.
//
// Events may arrive in any order; they are sorted by epoch internally, so
// the analysis is invariant to input ordering.
func AnalyzePattern(events []model.ManeuverEvent, windowStart, windowEnd time.Time) model.PatternSet {
	sorted := make([]model.ManeuverEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Epoch.Before(sorted[j].Epoch) })

	all := make([]time.Time, 0, len(sorted))
	var ew, ns []time.Time
	for _, ev := range sorted {
		all = append(all, ev.Epoch)
		if ev.EastWest {
			ew = append(ew, ev.Epoch)
		}
		if ev.NorthSouth {
			ns = append(ns, ev.Epoch)
		}
	}

	return model.PatternSet{
		Overall:    analyzeClass(all, windowStart, windowEnd),
		EastWest:   analyzeClass(ew, windowStart, windowEnd),
		NorthSouth: analyzeClass(ns, windowStart, windowEnd),
	}
}

func analyzeClass(epochs []time.Time, windowStart, windowEnd time.Time) model.PatternAnalysis {
	if len(epochs) == 0 {
		// No evidence: no pattern, no overdue call.
		return model.PatternAnalysis{Confidence: model.ConfidenceNone}
	}

	pa := model.PatternAnalysis{
		EventCount: len(epochs),
		LastEvent:  epochs[len(epochs)-1],
	}
	pa.DaysSinceLast = windowEnd.Sub(pa.LastEvent).Hours() / hoursPerDay

	gaps := make([]float64, 0, len(epochs)-1)
	for i := 1; i < len(epochs); i++ {
		gaps = append(gaps, epochs[i].Sub(epochs[i-1]).Hours()/hoursPerDay)
	}
	sort.Float64s(gaps)
	pa.IntervalsDays = gaps

	switch {
	case len(gaps) >= 2:
		pa.ExpectedIntervalDays = median(gaps)
		pa.Confidence = model.ConfidenceLow
		if cov, ok := coefficientOfVariation(gaps); ok {
			switch {
			case cov < highConfidenceCoV:
				pa.Confidence = model.ConfidenceHigh
			case cov < mediumConfidenceCoV:
				pa.Confidence = model.ConfidenceMedium
			}
		}
	case len(gaps) == 1:
		pa.ExpectedIntervalDays = gaps[0]
		pa.Confidence = model.ConfidenceLow
	default:
		// Single event: no interval history at all. The time remaining in
		// the window stands in for the expected interval; this is an
		// explicitly low-confidence placeholder, nothing more.
		pa.ExpectedIntervalDays = pa.DaysSinceLast
		pa.Confidence = model.ConfidenceLow
	}

	if pa.ExpectedIntervalDays > 0 {
		pa.Overdue = pa.DaysSinceLast > overdueFactor*pa.ExpectedIntervalDays
	}
	return pa
}

// ManeuverUniformity returns the coefficient of variation of the gaps
// between successive maneuvers of any class. ok is false with fewer than two
// events or degenerate spacing.
func ManeuverUniformity(events []model.ManeuverEvent) (float64, bool) {
	if len(events) < 2 {
		return 0, false
	}
	epochs := make([]time.Time, len(events))
	for i, ev := range events {
		epochs[i] = ev.Epoch
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i].Before(epochs[j]) })

	gaps := make([]float64, 0, len(epochs)-1)
	for i := 1; i < len(epochs); i++ {
		gaps = append(gaps, epochs[i].Sub(epochs[i-1]).Hours()/hoursPerDay)
	}
	return coefficientOfVariation(gaps)
}
