package model

// Observation is one satellite seen from one observer at one instant.
// Values are topocentric: azimuth measured clockwise from north, elevation
// above the local horizon. Observations are immutable once produced.
type Observation struct {
	Satellite string

	ElevationDeg float64
	AzimuthDeg   float64
	RangeKm      float64

	SatelliteECEF Vec3
	ObserverECEF  Vec3
}
