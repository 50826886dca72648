package model

import "time"

// TrackSample is one sampled subpoint along a propagated ground track.
type TrackSample struct {
	Time   time.Time
	LatDeg float64
	LonDeg float64
}

// BoundingEnvelope reduces a satellite's propagated ground track over a time
// window to a geographic extent. It is built once per (satellite, reference
// time, duration) triple and read-only thereafter.
//
// Longitude statistics are computed on raw signed longitude without
// unwrapping: for tracks crossing the ±180° antimeridian the min/max/mean
// longitudes can be misleading. Callers working near the antimeridian must
// account for this themselves.
type BoundingEnvelope struct {
	Satellite string

	Start time.Time
	End   time.Time

	// Samples are the interior samples of the window, in time order. The
	// first and last instants of the window are excluded.
	Samples []TrackSample

	MinLatDeg  float64
	MaxLatDeg  float64
	MeanLatDeg float64
	MinLonDeg  float64
	MaxLonDeg  float64
	MeanLonDeg float64
}
