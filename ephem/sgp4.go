// Package ephem adapts SGP4 two-line-element propagation to the monitor's
// Ephemeris seam. It is the only package that touches go-satellite; the
// geometry and envelope engines see positions and subpoints, nothing else.
package ephem

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/constellation-monitor/core"
	"github.com/signalsfoundry/constellation-monitor/model"
)

// ErrBadTLE is returned when element lines fail structural validation.
var ErrBadTLE = errors.New("malformed TLE")

// ErrPropagation is returned when SGP4 yields no usable position, typically
// from a decayed orbit or an epoch far outside the element set's validity.
var ErrPropagation = errors.New("propagation failed")

// SGP4 propagates one element set. It is safe for concurrent use; the
// underlying satellite record is never mutated after construction.
type SGP4 struct {
	sat satellite.Satellite
}

// NewSGP4FromTLE initialises a propagator from the two element lines.
// go-satellite faults on structurally broken lines, so the basic shape is
// checked here first.
func NewSGP4FromTLE(line1, line2 string) (*SGP4, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, err
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &SGP4{sat: sat}, nil
}

func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimRight(line1, "\r\n")
	line2 = strings.TrimRight(line2, "\r\n")
	if len(line1) < 69 || len(line2) < 69 {
		return fmt.Errorf("%w: element lines shorter than 69 columns", ErrBadTLE)
	}
	if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
		return fmt.Errorf("%w: element lines must start with '1 ' and '2 '", ErrBadTLE)
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("%w: catalog numbers differ between lines (%q vs %q)", ErrBadTLE, line1[2:7], line2[2:7])
	}
	return nil
}

// PositionECEF propagates to t and rotates the ECI position into the
// Earth-fixed frame, in kilometres.
func (s *SGP4) PositionECEF(t time.Time) (model.Vec3, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(s.sat, year, int(month), day, hour, min, sec)
	if !usablePosition(posECI) {
		return model.Vec3{}, fmt.Errorf("%w at %s", ErrPropagation, t.Format(time.RFC3339))
	}

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return model.Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}, nil
}

// Subpoint propagates to t and returns the geodetic point beneath the
// satellite, longitude normalized to [-180, 180).
func (s *SGP4) Subpoint(t time.Time) (model.Subpoint, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(s.sat, year, int(month), day, hour, min, sec)
	if !usablePosition(posECI) {
		return model.Subpoint{}, fmt.Errorf("%w at %s", ErrPropagation, t.Format(time.RFC3339))
	}

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	altKm, _, latlon := satellite.ECIToLLA(posECI, gmst)

	const radToDeg = 180.0 / math.Pi
	return model.Subpoint{
		LatDeg: latlon.Latitude * radToDeg,
		LonDeg: core.NormalizeLonDeg(latlon.Longitude * radToDeg),
		AltKm:  altKm,
	}, nil
}

// usablePosition rejects the zero vector and NaNs that SGP4 emits instead of
// an error on decayed or diverged element sets.
func usablePosition(v satellite.Vector3) bool {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		return false
	}
	return v.X != 0 || v.Y != 0 || v.Z != 0
}
