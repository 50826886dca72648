package health

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/constellation-monitor/model"
)

func driftSeries(rates []float64) model.ElementSeries {
	series := make(model.ElementSeries, len(rates))
	for i := range rates {
		r := rates[i]
		series[i] = model.ElementRecord{
			Epoch:             day(i),
			InclinationDeg:    0.03,
			LonDriftDegPerDay: &r,
		}
	}
	return series
}

func TestAnalyzeDrift_RequiresSamples(t *testing.T) {
	_, err := AnalyzeDrift(driftSeries([]float64{0.01}), model.ClassGSO, 0.05)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}

	// Records without drift rates do not count as samples.
	series := model.ElementSeries{
		{Epoch: day(0), InclinationDeg: 0.03},
		{Epoch: day(1), InclinationDeg: 0.03},
	}
	if _, err := AnalyzeDrift(series, model.ClassGSO, 0.05); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData for driftless series", err)
	}
}

func TestAnalyzeDrift_GSOBands(t *testing.T) {
	cases := []struct {
		rate       float64
		wantStatus string
		wantScore  float64
	}{
		{0.02, "Excellent", 100},
		{0.04, "Good", 85},
		{0.08, "Fair", 65},
		{0.15, "Poor", 40},
		{0.30, "Critical", 15},
	}
	for _, c := range cases {
		da, err := AnalyzeDrift(driftSeries([]float64{c.rate, c.rate, c.rate}), model.ClassGSO, 0.05)
		if err != nil {
			t.Fatalf("AnalyzeDrift(%v): %v", c.rate, err)
		}
		if da.Status != c.wantStatus || da.Score != c.wantScore {
			t.Errorf("rate %v: status/score = %s/%v, want %s/%v", c.rate, da.Status, da.Score, c.wantStatus, c.wantScore)
		}
		if math.Abs(da.TrendDegPerDay) > 1e-9 {
			t.Errorf("rate %v: trend = %v for constant drift, want 0", c.rate, da.TrendDegPerDay)
		}
	}
}

func TestAnalyzeDrift_IGSOBands(t *testing.T) {
	cases := []struct {
		rate       float64
		wantStatus string
	}{
		{0.5, "Normal"},
		{1.5, "Elevated"},
		{3.0, "High"},
	}
	for _, c := range cases {
		da, err := AnalyzeDrift(driftSeries([]float64{c.rate, c.rate}), model.ClassIGSO, 0.05)
		if err != nil {
			t.Fatalf("AnalyzeDrift(%v): %v", c.rate, err)
		}
		if da.Status != c.wantStatus {
			t.Errorf("rate %v: status = %s, want %s", c.rate, da.Status, c.wantStatus)
		}
	}
}

func TestAnalyzeDrift_Trend(t *testing.T) {
	// Drift magnitude grows 0.02 deg/day per day: the fit recovers the
	// slope exactly on noiseless data.
	da, err := AnalyzeDrift(driftSeries([]float64{0.02, 0.04, 0.06, 0.08}), model.ClassGSO, 0.05)
	if err != nil {
		t.Fatalf("AnalyzeDrift: %v", err)
	}
	if math.Abs(da.TrendDegPerDay-0.02) > 1e-6 {
		t.Errorf("trend = %v, want 0.02", da.TrendDegPerDay)
	}

	// Shrinking magnitude reports a negative trend regardless of sign.
	neg := []float64{-0.08, -0.06, -0.04, -0.02}
	da, err = AnalyzeDrift(driftSeries(neg), model.ClassGSO, 0.05)
	if err != nil {
		t.Fatalf("AnalyzeDrift: %v", err)
	}
	if da.TrendDegPerDay > -0.01 {
		t.Errorf("trend = %v, want decidedly negative", da.TrendDegPerDay)
	}
	if da.MeanDegPerDay >= 0 {
		t.Errorf("mean drift = %v, want negative (westward)", da.MeanDegPerDay)
	}
}

func TestAnalyzeDrift_CurrentIsLastSample(t *testing.T) {
	da, err := AnalyzeDrift(driftSeries([]float64{0.01, 0.02, 0.05}), model.ClassGSO, 0.05)
	if err != nil {
		t.Fatalf("AnalyzeDrift: %v", err)
	}
	if da.CurrentDegPerDay != 0.05 {
		t.Errorf("current drift = %v, want 0.05", da.CurrentDegPerDay)
	}
}
