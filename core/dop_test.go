package core

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/constellation-monitor/model"
)

// spreadObservations is a well-conditioned five-satellite sky: one near
// zenith and four spread around the horizon at moderate elevation.
func spreadObservations() []model.Observation {
	return []model.Observation{
		{Satellite: "A", ElevationDeg: 85, AzimuthDeg: 10},
		{Satellite: "B", ElevationDeg: 30, AzimuthDeg: 0},
		{Satellite: "C", ElevationDeg: 35, AzimuthDeg: 95},
		{Satellite: "D", ElevationDeg: 25, AzimuthDeg: 190},
		{Satellite: "E", ElevationDeg: 40, AzimuthDeg: 280},
	}
}

func TestComputeDOP_ConsistencyInvariant(t *testing.T) {
	result, err := ComputeDOP(spreadObservations(), 5, nil)
	if err != nil {
		t.Fatalf("ComputeDOP: %v", err)
	}

	if result.VisibleCount != 5 {
		t.Errorf("VisibleCount = %d, want 5", result.VisibleCount)
	}
	for name, v := range map[string]float64{
		"GDOP": result.GDOP, "PDOP": result.PDOP, "HDOP": result.HDOP,
		"VDOP": result.VDOP, "TDOP": result.TDOP,
	} {
		if v <= 0 || math.IsNaN(v) {
			t.Errorf("%s = %v, want positive", name, v)
		}
	}

	if d := result.GDOP*result.GDOP - (result.PDOP*result.PDOP + result.TDOP*result.TDOP); math.Abs(d) > 0.001 {
		t.Errorf("GDOP² - (PDOP² + TDOP²) = %v, want within 0.001", d)
	}
	if d := result.PDOP*result.PDOP - (result.HDOP*result.HDOP + result.VDOP*result.VDOP); math.Abs(d) > 0.001 {
		t.Errorf("PDOP² - (HDOP² + VDOP²) = %v, want within 0.001", d)
	}
}

func TestComputeDOP_Deterministic(t *testing.T) {
	first, err := ComputeDOP(spreadObservations(), 5, nil)
	if err != nil {
		t.Fatalf("first ComputeDOP: %v", err)
	}
	second, err := ComputeDOP(spreadObservations(), 5, nil)
	if err != nil {
		t.Fatalf("second ComputeDOP: %v", err)
	}
	if first != second {
		t.Errorf("repeated invocation differs: %+v vs %+v", first, second)
	}
}

func TestComputeDOP_InsufficientVisibility(t *testing.T) {
	obs := spreadObservations()[:3]
	_, err := ComputeDOP(obs, 5, nil)
	if !errors.Is(err, ErrInsufficientGeometry) {
		t.Fatalf("err = %v, want ErrInsufficientGeometry", err)
	}
}

func TestComputeDOP_MaskIsStrict(t *testing.T) {
	obs := spreadObservations()
	// Pin one satellite exactly at the mask: it must be excluded, leaving
	// only three rows.
	obs[0].ElevationDeg = 5
	obs[1].ElevationDeg = 5

	_, err := ComputeDOP(obs, 5, nil)
	if !errors.Is(err, ErrInsufficientGeometry) {
		t.Fatalf("err = %v, want ErrInsufficientGeometry (satellites at mask must not count)", err)
	}

	matrix := BuildGeometryMatrix(obs, 5)
	if len(matrix) != 3 {
		t.Errorf("geometry matrix rows = %d, want 3", len(matrix))
	}
}

func TestComputeDOP_DegenerateGeometry(t *testing.T) {
	// Four satellites stacked in the same direction: the normal matrix is
	// singular and the computation must fail rather than report numbers.
	obs := []model.Observation{
		{Satellite: "A", ElevationDeg: 45, AzimuthDeg: 90},
		{Satellite: "B", ElevationDeg: 45, AzimuthDeg: 90},
		{Satellite: "C", ElevationDeg: 45, AzimuthDeg: 90},
		{Satellite: "D", ElevationDeg: 45, AzimuthDeg: 90},
	}
	_, err := ComputeDOP(obs, 5, nil)
	if !errors.Is(err, ErrIllConditioned) {
		t.Fatalf("err = %v, want ErrIllConditioned", err)
	}
}

func TestDOPThresholds_MonotoneTiers(t *testing.T) {
	thresholds := DefaultDOPThresholds()

	order := map[model.QualityTier]int{
		model.QualityExcellent: 0,
		model.QualityGood:      1,
		model.QualityModerate:  2,
		model.QualityFair:      3,
		model.QualityPoor:      4,
	}

	prev := -1
	for gdop := 0.5; gdop < 12; gdop += 0.25 {
		tier := thresholds.Classify(gdop)
		rank, ok := order[tier]
		if !ok {
			t.Fatalf("Classify(%v) returned unknown tier %q", gdop, tier)
		}
		if rank < prev {
			t.Fatalf("tier rank decreased at GDOP %v: lower GDOP must never grade worse", gdop)
		}
		prev = rank
	}

	if got := thresholds.Classify(1.9); got != model.QualityExcellent {
		t.Errorf("Classify(1.9) = %q, want Excellent", got)
	}
	if got := thresholds.Classify(8.0); got != model.QualityPoor {
		t.Errorf("Classify(8.0) = %q, want Poor", got)
	}
}

func TestBuildGeometryMatrix_DirectionCosines(t *testing.T) {
	// A satellite due east at 30° elevation: east = -sin(90°)cos(30°),
	// north = cos(90°)cos(30°) = 0, up = sin(30°) = 0.5.
	obs := []model.Observation{{Satellite: "E", ElevationDeg: 30, AzimuthDeg: 90}}
	matrix := BuildGeometryMatrix(obs, 5)
	if len(matrix) != 1 {
		t.Fatalf("rows = %d, want 1", len(matrix))
	}
	row := matrix[0]
	wantEast := -math.Cos(30 * math.Pi / 180)
	if math.Abs(row[0]-wantEast) > 1e-12 {
		t.Errorf("east = %v, want %v", row[0], wantEast)
	}
	if math.Abs(row[1]) > 1e-12 {
		t.Errorf("north = %v, want 0", row[1])
	}
	if math.Abs(row[2]-0.5) > 1e-12 {
		t.Errorf("up = %v, want 0.5", row[2])
	}
	if row[3] != 1 {
		t.Errorf("clock column = %v, want 1", row[3])
	}
}
