package core

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// Ephemeris produces satellite positions at arbitrary instants. It is the
// narrow seam to the external propagation service: the geometry and envelope
// engines only ever ask for a position or a subpoint, so tests can substitute
// deterministic stubs for real orbital propagation.
type Ephemeris interface {
	// PositionECEF returns the satellite's Earth-fixed position in
	// kilometres at the given instant.
	PositionECEF(t time.Time) (model.Vec3, error)
	// Subpoint returns the geodetic point directly beneath the satellite
	// at the given instant.
	Subpoint(t time.Time) (model.Subpoint, error)
}

// Satellite pairs a name with its ephemeris handle. The monitor never
// mutates it; ownership stays with the caller.
type Satellite struct {
	Name      string
	Ephemeris Ephemeris
}

// ErrNoEphemeris is returned when a satellite has no propagator attached.
var ErrNoEphemeris = errors.New("satellite has no ephemeris")

// Observe computes the topocentric observation of one satellite from a
// geodetic observer at the given instant. The observer is taken at zero
// altitude. Any propagation or transform failure yields an error for this
// satellite only; batch callers skip it and continue.
func Observe(sat Satellite, at time.Time, observer model.LatLon) (model.Observation, error) {
	if sat.Ephemeris == nil {
		return model.Observation{}, fmt.Errorf("observe %s: %w", sat.Name, ErrNoEphemeris)
	}

	satECEF, err := sat.Ephemeris.PositionECEF(at)
	if err != nil {
		return model.Observation{}, fmt.Errorf("observe %s: %w", sat.Name, err)
	}

	obsECEF := GeodeticToECEF(observer.LatDeg, observer.LonDeg, 0)
	az, el, rng := LookAngles(observer, obsECEF, satECEF)

	return model.Observation{
		Satellite:     sat.Name,
		ElevationDeg:  el,
		AzimuthDeg:    az,
		RangeKm:       rng,
		SatelliteECEF: satECEF,
		ObserverECEF:  obsECEF,
	}, nil
}

// ObserveAll observes every satellite in the set from one observer,
// discarding satellites whose propagation fails. The returned observations
// are ordered by satellite name for reproducibility; failures are reported
// per satellite.
func ObserveAll(sats []Satellite, at time.Time, observer model.LatLon) ([]model.Observation, map[string]error) {
	ordered := make([]Satellite, len(sats))
	copy(ordered, sats)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	observations := make([]model.Observation, 0, len(ordered))
	failures := make(map[string]error)
	for _, sat := range ordered {
		obs, err := Observe(sat, at, observer)
		if err != nil {
			failures[sat.Name] = err
			continue
		}
		observations = append(observations, obs)
	}
	return observations, failures
}

// ComputeDOPForLocation is the batch entry point combining observation and
// DOP computation for one observer location and instant. It returns the DOP
// result, the names of satellites above the elevation mask, and all
// successful observations (including those below the mask).
func ComputeDOPForLocation(sats []Satellite, at time.Time, observer model.LatLon, maskDeg float64, thresholds DOPThresholds) (model.DOPResult, []string, []model.Observation, error) {
	observations, _ := ObserveAll(sats, at, observer)

	var visible []string
	for _, obs := range observations {
		if obs.ElevationDeg > maskDeg {
			visible = append(visible, obs.Satellite)
		}
	}

	result, err := ComputeDOP(observations, maskDeg, thresholds)
	if err != nil {
		return model.DOPResult{}, visible, observations, err
	}
	return result, visible, observations, nil
}
