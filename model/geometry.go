package model

import "math"

// Vec3 is an Earth-fixed (ECEF) position vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LatLon is a geodetic observer location in degrees, assumed at zero
// altitude unless the caller supplies one explicitly.
type LatLon struct {
	LatDeg float64
	LonDeg float64
}

// Subpoint is the geodetic point directly beneath a satellite.
type Subpoint struct {
	LatDeg float64
	LonDeg float64
	AltKm  float64
}
