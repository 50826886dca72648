package health

import (
	"math"
	"sort"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// DetectorConfig tunes the maneuver detector. The zero value is not usable;
// start from DefaultDetectorConfig.
type DetectorConfig struct {
	// ZThreshold is the modified z-score above which a semi-major-axis
	// jump counts as an outlier among the series' sample-to-sample deltas.
	ZThreshold float64
	// SMAThresholdKm flags a semi-major-axis jump outright, regardless of
	// the z-score.
	SMAThresholdKm float64
	// IncThresholdDeg flags an inclination jump.
	IncThresholdDeg float64
	// PersistWindow is how many subsequent samples must hold the new level
	// before a jump counts as a maneuver rather than a data glitch.
	PersistWindow int
}

// DefaultDetectorConfig returns the standard detection parameters.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ZThreshold:      3.5,
		SMAThresholdKm:  0.5,
		IncThresholdDeg: 0.01,
		PersistWindow:   2,
	}
}

// DetectManeuvers scans an orbital-element series for station-keeping
// maneuvers: semi-major-axis jumps mark orbit-plane (E-W) corrections,
// inclination jumps mark N-S corrections. A jump only counts when the new
// level persists, filtering single-sample element glitches. The input series
// is never mutated.
//
// Callers with a dedicated external detector can skip this and feed its
// events straight into AnalyzePattern / Assess.
func DetectManeuvers(series model.ElementSeries, cfg DetectorConfig) []model.ManeuverEvent {
	if len(series) < 3 {
		return nil
	}

	sorted := make(model.ElementSeries, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Epoch.Before(sorted[j].Epoch) })

	sma := make([]float64, len(sorted))
	inc := make([]float64, len(sorted))
	for i, r := range sorted {
		sma[i] = r.SMAKm
		inc[i] = r.InclinationDeg
	}

	dSMA := deltas(sma)
	mz := modifiedZScores(dSMA)

	var events []model.ManeuverEvent
	for i := 1; i < len(sorted); i++ {
		jumpSMA := dSMA[i-1]
		jumpInc := inc[i] - inc[i-1]

		ew := (math.Abs(jumpSMA) >= cfg.SMAThresholdKm || math.Abs(mz[i-1]) >= cfg.ZThreshold) &&
			persists(sma, i, cfg.PersistWindow, jumpSMA)
		ns := math.Abs(jumpInc) >= cfg.IncThresholdDeg &&
			persists(inc, i, cfg.PersistWindow, jumpInc)

		if ew || ns {
			events = append(events, model.ManeuverEvent{
				Epoch:      sorted[i].Epoch,
				EastWest:   ew,
				NorthSouth: ns,
			})
		}
	}
	return events
}

func deltas(vals []float64) []float64 {
	out := make([]float64, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		out[i-1] = vals[i] - vals[i-1]
	}
	return out
}

// modifiedZScores uses the median absolute deviation, which a single large
// maneuver jump cannot inflate the way it would a plain standard deviation.
// A zero MAD yields zero scores; the absolute thresholds still apply then.
func modifiedZScores(vals []float64) []float64 {
	scores := make([]float64, len(vals))
	med := median(vals)

	absDev := make([]float64, len(vals))
	for i, v := range vals {
		absDev[i] = math.Abs(v - med)
	}
	mad := median(absDev)
	if mad == 0 {
		return scores
	}

	const consistency = 0.6745
	for i, v := range vals {
		scores[i] = consistency * (v - med) / mad
	}
	return scores
}

// persists reports whether the level after the jump at index i stays
// displaced from the pre-jump level: every sample in the window must remain
// at least half the jump away from vals[i-1]. Single-sample spikes that
// revert immediately are element glitches, not maneuvers; so are the revert
// edges themselves, whose starting level was only just reached by the spike.
func persists(vals []float64, i, window int, jump float64) bool {
	if window < 1 {
		window = 1
	}
	if i >= 2 && math.Abs(vals[i-1]-vals[i-2]) >= math.Abs(jump)/2 {
		return false
	}
	end := i + window
	if end > len(vals) {
		end = len(vals)
	}
	for j := i; j < end; j++ {
		if math.Abs(vals[j]-vals[i-1]) < math.Abs(jump)/2 {
			return false
		}
	}
	return true
}
