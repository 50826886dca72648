package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// ErrWindowTooShort is returned when the sampling window has no interior
// samples, i.e. fewer than three fenceposts at the given step.
var ErrWindowTooShort = errors.New("envelope window too short for sample interval")

// Envelope propagates one satellite's ground track over [reference,
// reference+duration] sampled every step, and reduces it to a geographic
// bounding envelope. The first and last instants of the window are excluded
// from the sampled interior set used for the statistics; the window bounds
// themselves are recorded as Start/End.
//
// Longitudes are raw signed degrees in [-180, 180): tracks crossing the
// antimeridian produce a misleading envelope (see model.BoundingEnvelope).
func Envelope(sat Satellite, reference time.Time, step, duration time.Duration) (model.BoundingEnvelope, error) {
	if sat.Ephemeris == nil {
		return model.BoundingEnvelope{}, fmt.Errorf("envelope %s: %w", sat.Name, ErrNoEphemeris)
	}
	if step <= 0 || duration <= 0 {
		return model.BoundingEnvelope{}, fmt.Errorf("envelope %s: non-positive step or duration", sat.Name)
	}

	// Fenceposts k = 0..steps-1; interior samples are k = 1..steps-2.
	steps := int(duration/step) + 1
	if steps < 3 {
		return model.BoundingEnvelope{}, fmt.Errorf("envelope %s: %w", sat.Name, ErrWindowTooShort)
	}

	samples := make([]model.TrackSample, 0, steps-2)
	for k := 1; k <= steps-2; k++ {
		at := reference.Add(time.Duration(k) * step)
		sp, err := sat.Ephemeris.Subpoint(at)
		if err != nil {
			return model.BoundingEnvelope{}, fmt.Errorf("envelope %s at %s: %w", sat.Name, at.Format(time.RFC3339), err)
		}
		samples = append(samples, model.TrackSample{
			Time:   at,
			LatDeg: sp.LatDeg,
			LonDeg: NormalizeLonDeg(sp.LonDeg),
		})
	}

	env := model.BoundingEnvelope{
		Satellite: sat.Name,
		Start:     reference,
		End:       reference.Add(duration),
		Samples:   samples,
	}

	env.MinLatDeg, env.MaxLatDeg, env.MeanLatDeg = extent(samples, func(s model.TrackSample) float64 { return s.LatDeg })
	env.MinLonDeg, env.MaxLonDeg, env.MeanLonDeg = extent(samples, func(s model.TrackSample) float64 { return s.LonDeg })
	return env, nil
}

// EnvelopeBatch computes envelopes for a set of satellites. One satellite's
// propagation failure is reported in the error map and does not affect the
// others.
func EnvelopeBatch(sats []Satellite, reference time.Time, step, duration time.Duration) (map[string]model.BoundingEnvelope, map[string]error) {
	envelopes := make(map[string]model.BoundingEnvelope, len(sats))
	failures := make(map[string]error)
	for _, sat := range sats {
		env, err := Envelope(sat, reference, step, duration)
		if err != nil {
			failures[sat.Name] = err
			continue
		}
		envelopes[sat.Name] = env
	}
	return envelopes, failures
}

func extent(samples []model.TrackSample, pick func(model.TrackSample) float64) (min, max, mean float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	min = pick(samples[0])
	max = min
	sum := 0.0
	for _, s := range samples {
		v := pick(s)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(len(samples))
}
