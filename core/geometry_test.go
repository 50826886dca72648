package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/constellation-monitor/model"
)

func TestGeodeticToECEF_Equator(t *testing.T) {
	p := GeodeticToECEF(0, 0, 0)
	if math.Abs(p.X-6378.137) > 1e-6 || math.Abs(p.Y) > 1e-6 || math.Abs(p.Z) > 1e-6 {
		t.Errorf("equator point = %+v, want (6378.137, 0, 0)", p)
	}
}

func TestGeodeticToECEF_Pole(t *testing.T) {
	p := GeodeticToECEF(90, 0, 0)
	// Semi-minor axis of WGS84.
	const b = 6356.7523142
	if math.Abs(p.Z-b) > 1e-3 {
		t.Errorf("pole Z = %v, want %v", p.Z, b)
	}
	if math.Abs(p.X) > 1e-6 || math.Abs(p.Y) > 1e-6 {
		t.Errorf("pole X/Y = %v/%v, want 0/0", p.X, p.Y)
	}
}

func TestLookAngles_Zenith(t *testing.T) {
	observer := model.LatLon{LatDeg: 0, LonDeg: 0}
	obsECEF := GeodeticToECEF(0, 0, 0)
	satECEF := model.Vec3{X: 42164, Y: 0, Z: 0}

	_, el, rng := LookAngles(observer, obsECEF, satECEF)
	if math.Abs(el-90) > 1e-9 {
		t.Errorf("elevation = %v, want 90", el)
	}
	wantRange := 42164 - 6378.137
	if math.Abs(rng-wantRange) > 1e-6 {
		t.Errorf("range = %v, want %v", rng, wantRange)
	}
}

func TestLookAngles_AzimuthQuadrants(t *testing.T) {
	observer := model.LatLon{LatDeg: 0, LonDeg: 0}
	obsECEF := GeodeticToECEF(0, 0, 0)

	// A satellite north of the observer along its meridian sits due north.
	north := GeodeticToECEF(10, 0, 20000)
	az, el, _ := LookAngles(observer, obsECEF, north)
	if math.Abs(az) > 1e-9 && math.Abs(az-360) > 1e-9 {
		t.Errorf("northern satellite azimuth = %v, want 0", az)
	}
	if el <= 0 {
		t.Errorf("northern satellite elevation = %v, want > 0", el)
	}

	// East of the observer along the equator sits due east.
	east := GeodeticToECEF(0, 10, 20000)
	az, _, _ = LookAngles(observer, obsECEF, east)
	if math.Abs(az-90) > 1e-9 {
		t.Errorf("eastern satellite azimuth = %v, want 90", az)
	}
}

func TestLookAngles_BelowHorizon(t *testing.T) {
	observer := model.LatLon{LatDeg: 0, LonDeg: 0}
	obsECEF := GeodeticToECEF(0, 0, 0)
	// Antipodal satellite is far below the local horizon.
	sat := model.Vec3{X: -42164, Y: 0, Z: 0}

	_, el, _ := LookAngles(observer, obsECEF, sat)
	if el >= 0 {
		t.Errorf("antipodal elevation = %v, want < 0", el)
	}
}

func TestNormalizeLonDeg(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{179, 179},
		{180, -180},
		{190, -170},
		{-190, 170},
		{540, -180},
	}
	for _, c := range cases {
		if got := NormalizeLonDeg(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeLonDeg(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
