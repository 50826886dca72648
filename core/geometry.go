package core

import (
	"math"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// WGS84 ellipsoid parameters (kilometres).
const (
	wgs84SemiMajorKm = 6378.137
	wgs84Flattening  = 1.0 / 298.257223563
)

// EarthRadiusKm is the mean Earth radius used where a spherical
// approximation is good enough (kilometres).
const EarthRadiusKm = 6371.0

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// GeodeticToECEF converts a geodetic position on the WGS84 ellipsoid to an
// Earth-fixed vector in kilometres.
func GeodeticToECEF(latDeg, lonDeg, altKm float64) model.Vec3 {
	e2 := 2*wgs84Flattening - wgs84Flattening*wgs84Flattening

	lat := latDeg * degToRad
	lon := lonDeg * degToRad
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84SemiMajorKm / math.Sqrt(1-e2*sinLat*sinLat)

	return model.Vec3{
		X: (n + altKm) * cosLat * math.Cos(lon),
		Y: (n + altKm) * cosLat * math.Sin(lon),
		Z: (n*(1-e2) + altKm) * sinLat,
	}
}

// LookAngles returns the topocentric azimuth (degrees clockwise from north,
// [0, 360)), elevation (degrees above the local horizon) and slant range
// (kilometres) of a satellite as seen from a geodetic observer.
func LookAngles(observer model.LatLon, observerECEF, satelliteECEF model.Vec3) (azDeg, elDeg, rangeKm float64) {
	rho := satelliteECEF.Sub(observerECEF)
	rangeKm = rho.Norm()
	if rangeKm == 0 {
		return 0, 90, 0
	}

	lat := observer.LatDeg * degToRad
	lon := observer.LonDeg * degToRad
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	// ECEF -> ENU basis at the observer.
	east := model.Vec3{X: -sinLon, Y: cosLon, Z: 0}
	north := model.Vec3{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	up := model.Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}

	e := rho.Dot(east)
	n := rho.Dot(north)
	u := rho.Dot(up)

	azDeg = math.Atan2(e, n) * radToDeg
	if azDeg < 0 {
		azDeg += 360
	}

	sinEl := u / rangeKm
	if sinEl > 1 {
		sinEl = 1
	} else if sinEl < -1 {
		sinEl = -1
	}
	elDeg = math.Asin(sinEl) * radToDeg

	return azDeg, elDeg, rangeKm
}

// NormalizeLonDeg wraps a longitude into [-180, 180).
func NormalizeLonDeg(lonDeg float64) float64 {
	lon := math.Mod(lonDeg+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
