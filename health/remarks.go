package health

import (
	"fmt"
	"math"
	"strings"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// buildRemarks renders the report's findings as ordered human-readable
// strings: inclination control, drift behaviour, per-class maintenance
// status, overdue warnings with explicit day counts, uniformity, stability.
func buildRemarks(r model.HealthReport, drift *DriftAnalysis, tol Tolerances) []string {
	var remarks []string

	if r.InclinationDeviationDeg != nil {
		dev := *r.InclinationDeviationDeg
		switch {
		case dev <= tol.InclinationTolDeg*0.3:
			remarks = append(remarks, fmt.Sprintf("Excellent inclination control (deviation %.2f deg)", dev))
		case dev <= tol.InclinationTolDeg:
			remarks = append(remarks, fmt.Sprintf("Inclination within tolerance (deviation %.2f deg)", dev))
		default:
			remarks = append(remarks, fmt.Sprintf("Inclination deviation exceeds tolerance (%.2f deg)", dev))
		}
	}

	if drift != nil {
		remarks = append(remarks, driftRemarks(r.Class, *drift, tol)...)
	}

	remarks = append(remarks, maintenanceStatus(r.Pattern))
	remarks = append(remarks, classPatternRemarks("E-W", r.Pattern.EastWest)...)
	remarks = append(remarks, classPatternRemarks("N-S", r.Pattern.NorthSouth)...)

	if r.UniformityCoV != nil {
		if *r.UniformityCoV <= tol.UniformityThreshold {
			remarks = append(remarks, "Regular maneuver pattern detected")
		} else {
			remarks = append(remarks, "Irregular maneuver spacing")
		}
	}

	if r.InclinationStdDeg < 0.1 {
		remarks = append(remarks, "Stable orbital parameters")
	}

	return remarks
}

func driftRemarks(class model.OrbitClass, da DriftAnalysis, tol Tolerances) []string {
	var remarks []string
	absMean := math.Abs(da.MeanDegPerDay)

	if class == model.ClassGSO {
		switch da.Status {
		case "Excellent":
			remarks = append(remarks, fmt.Sprintf("Excellent station-keeping (drift %.3f deg/day)", absMean))
		case "Good":
			remarks = append(remarks, fmt.Sprintf("Good drift control (%.3f deg/day)", absMean))
		case "Fair":
			remarks = append(remarks, fmt.Sprintf("Moderate drift detected (%.3f deg/day)", absMean))
		case "Poor":
			remarks = append(remarks, fmt.Sprintf("High drift, correction required (%.3f deg/day)", absMean))
		default:
			remarks = append(remarks, fmt.Sprintf("Critical drift, immediate attention needed (%.3f deg/day)", absMean))
		}

		if da.MeanDegPerDay > 0 {
			remarks = append(remarks, fmt.Sprintf("Drifting eastward at %.3f deg/day", absMean))
		} else if da.MeanDegPerDay < 0 {
			remarks = append(remarks, fmt.Sprintf("Drifting westward at %.3f deg/day", absMean))
		}
	} else {
		switch da.Status {
		case "Normal":
			remarks = append(remarks, fmt.Sprintf("Normal IGSO drift (%.3f deg/day)", absMean))
		case "Elevated":
			remarks = append(remarks, fmt.Sprintf("Elevated IGSO drift (%.3f deg/day)", absMean))
		default:
			remarks = append(remarks, fmt.Sprintf("High IGSO drift (%.3f deg/day)", absMean))
		}
	}

	if da.TrendDegPerDay > trendEps {
		remarks = append(remarks, fmt.Sprintf("Drift magnitude increasing (trend %+.3f deg/day)", da.TrendDegPerDay))
	} else if da.TrendDegPerDay < -trendEps {
		remarks = append(remarks, fmt.Sprintf("Drift magnitude decreasing (trend %.3f deg/day)", da.TrendDegPerDay))
	}

	if class == model.ClassGSO {
		if da.StdDegPerDay > tol.DriftTolGSODegPerDay {
			remarks = append(remarks, fmt.Sprintf("Unstable drift (std dev %.3f deg/day)", da.StdDegPerDay))
		} else if da.StdDegPerDay > tol.DriftTolGSODegPerDay*0.5 {
			remarks = append(remarks, fmt.Sprintf("Moderate drift variability (std dev %.3f deg/day)", da.StdDegPerDay))
		}
	}

	return remarks
}

// maintenanceStatus is the one-line per-class schedule summary.
func maintenanceStatus(ps model.PatternSet) string {
	parts := []string{
		classStatus("E-W", ps.EastWest),
		classStatus("N-S", ps.NorthSouth),
	}
	return strings.Join(parts, " | ")
}

func classStatus(label string, pa model.PatternAnalysis) string {
	if pa.EventCount == 0 {
		return fmt.Sprintf("%s: no maneuvers detected", label)
	}
	if pa.Overdue {
		return fmt.Sprintf("%s: OVERDUE (%.0f days since last, expected every %.0f days)",
			label, pa.DaysSinceLast, pa.ExpectedIntervalDays)
	}
	return fmt.Sprintf("%s: on schedule (%.0f days ago, every %.0f days)",
		label, pa.DaysSinceLast, pa.ExpectedIntervalDays)
}

func classPatternRemarks(label string, pa model.PatternAnalysis) []string {
	if pa.EventCount == 0 {
		return nil
	}

	var remarks []string
	switch pa.Confidence {
	case model.ConfidenceHigh:
		remarks = append(remarks, fmt.Sprintf("%s: consistent pattern (every %.0f days)", label, pa.ExpectedIntervalDays))
	case model.ConfidenceMedium, model.ConfidenceLow, model.ConfidenceVeryLow:
		remarks = append(remarks, fmt.Sprintf("%s: variable pattern (confidence %s)", label, pa.Confidence))
	}

	if pa.Overdue {
		remarks = append(remarks, fmt.Sprintf("%s maneuver overdue by %.0f days", label, pa.DaysSinceLast-pa.ExpectedIntervalDays))
	} else if next := pa.ExpectedIntervalDays - pa.DaysSinceLast; next > 0 {
		remarks = append(remarks, fmt.Sprintf("Next %s maneuver expected in ~%.0f days", label, next))
	}
	return remarks
}
