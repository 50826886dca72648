package health

import (
	"errors"
	"fmt"
	"math"

	"github.com/sajari/regression"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// ErrNoData is returned when a computation has nothing to work from: an
// empty element series or too few samples to derive a statistic.
var ErrNoData = errors.New("no data")

// trendEps: drift-magnitude slopes inside ±trendEps °/day per day are
// treated as flat.
const trendEps = 0.01

// igsoDriftScaleDegPerDay is the natural drift scale for inclined
// geosynchronous orbits; IGSO status bands and stability penalties are
// expressed against it rather than the much tighter GSO tolerance.
const igsoDriftScaleDegPerDay = 2.0

// DriftAnalysis summarises longitudinal-drift behaviour over an element
// series. Score is the classification-aware base score before the composite
// scorer applies stability and trend adjustments.
type DriftAnalysis struct {
	MeanDegPerDay    float64
	StdDegPerDay     float64
	CurrentDegPerDay float64

	// TrendDegPerDay is the fitted slope of |drift| over time: positive
	// means the drift magnitude is growing.
	TrendDegPerDay float64

	Score  float64
	Status string
	Color  string
}

// AnalyzeDrift derives drift statistics, a base drift score/status for the
// orbit class, and the drift-magnitude trend. It needs at least two samples
// carrying a drift rate.
func AnalyzeDrift(series model.ElementSeries, class model.OrbitClass, gsoTolDegPerDay float64) (DriftAnalysis, error) {
	samples := series.DriftSamples()
	if len(samples) < 2 {
		return DriftAnalysis{}, fmt.Errorf("drift analysis: %w: %d drift samples, need 2", ErrNoData, len(samples))
	}

	rates := make([]float64, len(samples))
	for i, r := range samples {
		rates[i] = *r.LonDriftDegPerDay
	}

	da := DriftAnalysis{
		MeanDegPerDay:    mean(rates),
		StdDegPerDay:     stdDev(rates),
		CurrentDegPerDay: rates[len(rates)-1],
		TrendDegPerDay:   driftTrend(samples),
	}
	da.Score, da.Status, da.Color = classifyDrift(math.Abs(da.MeanDegPerDay), class, gsoTolDegPerDay)
	return da, nil
}

// driftTrend fits |drift| against elapsed days by least squares. A failed
// fit (degenerate epochs) reports a flat trend rather than an error.
func driftTrend(samples []model.ElementRecord) float64 {
	r := new(regression.Regression)
	r.SetObserved("drift magnitude (deg/day)")
	r.SetVar(0, "elapsed days")

	t0 := samples[0].Epoch
	for _, s := range samples {
		days := s.Epoch.Sub(t0).Hours() / hoursPerDay
		r.Train(regression.DataPoint(math.Abs(*s.LonDriftDegPerDay), []float64{days}))
	}
	if err := r.Run(); err != nil {
		return 0
	}
	slope := r.Coeff(1)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return slope
}

func classifyDrift(absMean float64, class model.OrbitClass, gsoTol float64) (score float64, status, color string) {
	if class == model.ClassGSO {
		switch {
		case absMean <= 0.5*gsoTol:
			return 100, "Excellent", "green"
		case absMean <= gsoTol:
			return 85, "Good", "green"
		case absMean <= 2*gsoTol:
			return 65, "Fair", "yellow"
		case absMean <= 4*gsoTol:
			return 40, "Poor", "orange"
		default:
			return 15, "Critical", "red"
		}
	}
	switch {
	case absMean <= 0.5*igsoDriftScaleDegPerDay:
		return 90, "Normal", "green"
	case absMean <= igsoDriftScaleDegPerDay:
		return 65, "Elevated", "yellow"
	default:
		return 35, "High", "orange"
	}
}
