package model

import "time"

// ElementRecord is one time-stamped orbital-element sample for a satellite.
// Optional fields are nil when the upstream element source did not provide
// them.
type ElementRecord struct {
	Epoch time.Time

	InclinationDeg float64
	SMAKm          float64

	// LonDriftDegPerDay is the longitudinal drift rate supplied by the
	// external drift analyzer, when available.
	LonDriftDegPerDay *float64

	AltitudeKm *float64
}

// ElementSeries is an orbital-element time series ordered by epoch.
type ElementSeries []ElementRecord

// Window returns the first and last epochs of the series. ok is false for an
// empty series.
func (s ElementSeries) Window() (start, end time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end = s[0].Epoch, s[0].Epoch
	for _, r := range s[1:] {
		if r.Epoch.Before(start) {
			start = r.Epoch
		}
		if r.Epoch.After(end) {
			end = r.Epoch
		}
	}
	return start, end, true
}

// DriftSamples returns the records carrying a drift rate, preserving order.
func (s ElementSeries) DriftSamples() []ElementRecord {
	var out []ElementRecord
	for _, r := range s {
		if r.LonDriftDegPerDay != nil {
			out = append(out, r)
		}
	}
	return out
}
