package health

import (
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// Tolerances carries the assessment thresholds. They are passed explicitly
// into Assess so unit tests can override them deterministically.
type Tolerances struct {
	// InclinationTolDeg is the allowed deviation from the target
	// inclination before the inclination score reaches zero.
	InclinationTolDeg float64
	// DriftTolGSODegPerDay is the acceptable longitudinal drift for a
	// geostationary-like satellite.
	DriftTolGSODegPerDay float64
	// UniformityThreshold is the maneuver-interval coefficient of
	// variation above which spacing counts as irregular.
	UniformityThreshold float64
}

// DefaultTolerances returns the standard assessment thresholds.
func DefaultTolerances() Tolerances {
	return Tolerances{
		InclinationTolDeg:    1.0,
		DriftTolGSODegPerDay: 0.05,
		UniformityThreshold:  0.8,
	}
}

// PatternReference optionally supplies a longer observation history for
// cadence estimation than the window being scored: interval estimates over
// a year are far more stable than over a display window of weeks.
type PatternReference struct {
	Series model.ElementSeries
	Events []model.ManeuverEvent
}

// Orbit classification boundary: mean inclination below this is
// geostationary-like.
const gsoInclinationBoundaryDeg = 10.0

// Maintenance scoring tables. Class weights reflect that longitude-keeping
// (E-W) lapses degrade regional service faster than inclination drift.
const (
	eastWestWeight   = 0.6
	northSouthWeight = 0.4

	// Class scores when a class has no events at all. N-S cadences are
	// naturally sparse, so their absence is penalised less.
	noEastWestScore   = 50
	noNorthSouthScore = 70
)

// overdueScoreSteps maps the overdue ratio (days since last over expected
// interval) to a class score, worst first.
var overdueScoreSteps = []struct {
	ratioAbove float64
	score      float64
}{
	{ratioAbove: 3.0, score: 0},
	{ratioAbove: 2.0, score: 30},
	{ratioAbove: 0, score: 60},
}

// confidenceDiscounts discount a class score when the cadence estimate is
// weakly supported, with a floor so sparse history alone never zeroes the
// class.
var confidenceDiscounts = map[model.PatternConfidence]struct {
	factor float64
	floor  float64
}{
	model.ConfidenceVeryLow: {factor: 0.7, floor: 50},
	model.ConfidenceLow:     {factor: 0.85, floor: 60},
}

// Overall blend weights by which sub-scores are available.
var (
	weightsAll       = [4]float64{0.35, 0.25, 0.15, 0.25} // inclination, maintenance, uniformity, drift
	weightsNoDrift   = [4]float64{0.5, 0.3, 0.2, 0}
	weightsNoIncl    = [4]float64{0, 0.4, 0.2, 0.4}
	weightsMinimum   = [4]float64{0, 0.6, 0.4, 0}
	healthTierBounds = []struct {
		min  float64
		tier model.HealthTier
	}{
		{85, model.HealthExcellent},
		{70, model.HealthGood},
		{50, model.HealthFair},
	}
)

// Assess produces the composite health report for one satellite from its
// orbital-element series and detected maneuver events. requirements supplies
// the per-satellite service targets; ref optionally provides a longer
// history for cadence estimation. The report is a pure function of the
// inputs: events are sorted internally, nothing is retained between calls.
func Assess(name string, series model.ElementSeries, events []model.ManeuverEvent, tol Tolerances, requirements map[string]model.ServiceRequirement, ref *PatternReference) (model.HealthReport, error) {
	windowStart, windowEnd, ok := series.Window()
	if !ok {
		return model.HealthReport{}, fmt.Errorf("assess %s: %w: empty element series", name, ErrNoData)
	}

	inclinations := make([]float64, len(series))
	for i, r := range series {
		inclinations[i] = r.InclinationDeg
	}
	meanInc := mean(inclinations)
	stdInc := stdDev(inclinations)

	class := model.ClassIGSO
	if meanInc < gsoInclinationBoundaryDeg {
		class = model.ClassGSO
	}

	report := model.HealthReport{
		Satellite:          name,
		Class:              class,
		MeanInclinationDeg: meanInc,
		InclinationStdDeg:  stdInc,
		ManeuverCount:      len(events),
	}

	windowDays := windowEnd.Sub(windowStart).Hours() / hoursPerDay
	if months := windowDays / 30.0; months > 0 {
		report.ManeuversPerMonth = float64(len(events)) / months
	}

	// Inclination score.
	var incDeviation float64
	req, hasReq := requirements[name]
	if target, okTarget := req.TargetInclination(); hasReq && okTarget {
		incDeviation = math.Abs(meanInc - target)
		stabilityPenalty := math.Min(20, 10*stdInc)
		score := math.Max(0, 100-(incDeviation/tol.InclinationTolDeg)*100-stabilityPenalty)

		report.TargetInclinationDeg = &target
		report.InclinationDeviationDeg = &incDeviation
		report.InclinationScore = &score
	}

	// Maintenance score from the maneuver cadence, preferring the longer
	// reference history when supplied.
	pattern := patternForScoring(events, windowStart, windowEnd, ref)
	report.Pattern = pattern

	ewScore := classMaintenanceScore(pattern.EastWest, noEastWestScore)
	nsScore := classMaintenanceScore(pattern.NorthSouth, noNorthSouthScore)
	report.MaintenanceScore = eastWestWeight*ewScore + northSouthWeight*nsScore

	// Uniformity score from interval regularity over the scored window.
	report.UniformityScore, report.UniformityCoV = uniformityScore(events, tol.UniformityThreshold)

	// Drift score, when the series carries drift rates.
	var drift *DriftAnalysis
	if da, err := AnalyzeDrift(series, class, tol.DriftTolGSODegPerDay); err == nil {
		drift = &da
		score := adjustDriftScore(da, class, tol.DriftTolGSODegPerDay)
		report.DriftScore = &score
		report.MeanDriftDegPerDay = &da.MeanDegPerDay
		report.CurrentDriftDegPerDay = &da.CurrentDegPerDay
		report.DriftStatus = da.Status
	} else {
		report.DriftStatus = "N/A"
	}

	report.OverallScore = blend(report)
	report.Tier = healthTier(report.OverallScore)
	report.Remarks = buildRemarks(report, drift, tol)

	return report, nil
}

func patternForScoring(events []model.ManeuverEvent, windowStart, windowEnd time.Time, ref *PatternReference) model.PatternSet {
	if ref != nil {
		if start, end, ok := ref.Series.Window(); ok {
			return AnalyzePattern(ref.Events, start, end)
		}
	}
	return AnalyzePattern(events, windowStart, windowEnd)
}

// classMaintenanceScore grades one maneuver class. Absent classes get the
// supplied default; otherwise the score steps down with the overdue ratio
// and is discounted when the cadence estimate is weakly supported.
func classMaintenanceScore(pa model.PatternAnalysis, absentScore float64) float64 {
	if pa.EventCount == 0 {
		return absentScore
	}

	var score float64
	ratio := 0.0
	if pa.ExpectedIntervalDays > 0 {
		ratio = pa.DaysSinceLast / pa.ExpectedIntervalDays
	}
	if pa.Overdue {
		for _, step := range overdueScoreSteps {
			if ratio > step.ratioAbove {
				score = step.score
				break
			}
		}
	} else if ratio < 1.0 {
		score = 100
	} else {
		score = 90
	}

	if d, ok := confidenceDiscounts[pa.Confidence]; ok {
		score = math.Max(d.floor, score*d.factor)
	}
	return score
}

func uniformityScore(events []model.ManeuverEvent, threshold float64) (float64, *float64) {
	switch len(events) {
	case 0:
		return 0, nil
	case 1:
		return 50, nil
	}

	cov, ok := ManeuverUniformity(events)
	if !ok {
		return 50, nil
	}
	if cov <= threshold {
		return 100, &cov
	}
	const maxPenalty = 50
	excess := cov - threshold
	penalty := math.Min(maxPenalty, (excess/threshold)*maxPenalty)
	return 100 - penalty, &cov
}

// adjustDriftScore applies the stability and trend adjustments on top of the
// analyzer's base score. Unstable station-keeping (noisy drift) is capped at
// a 30-point penalty for GSO and 20 for IGSO; a worsening drift-magnitude
// trend costs 10 points, an improving one earns 5 back.
func adjustDriftScore(da DriftAnalysis, class model.OrbitClass, gsoTol float64) float64 {
	score := da.Score

	if class == model.ClassGSO {
		stability := da.StdDegPerDay / gsoTol
		if stability > 2 {
			score = math.Max(0, score-math.Min(30, (stability-2)*10))
		}
	} else {
		stability := da.StdDegPerDay / igsoDriftScaleDegPerDay
		if stability > 1 {
			score = math.Max(0, score-math.Min(20, (stability-1)*10))
		}
	}

	if da.TrendDegPerDay > trendEps {
		score = math.Max(0, score-10)
	} else if da.TrendDegPerDay < -trendEps {
		score = math.Min(100, score+5)
	}
	return score
}

func blend(r model.HealthReport) float64 {
	var weights [4]float64
	switch {
	case r.InclinationScore != nil && r.DriftScore != nil:
		weights = weightsAll
	case r.InclinationScore != nil:
		weights = weightsNoDrift
	case r.DriftScore != nil:
		weights = weightsNoIncl
	default:
		weights = weightsMinimum
	}

	total := weights[1]*r.MaintenanceScore + weights[2]*r.UniformityScore
	if r.InclinationScore != nil {
		total += weights[0] * *r.InclinationScore
	}
	if r.DriftScore != nil {
		total += weights[3] * *r.DriftScore
	}
	return total
}

func healthTier(score float64) model.HealthTier {
	for _, b := range healthTierBounds {
		if score >= b.min {
			return b.tier
		}
	}
	return model.HealthNeedsAttention
}
