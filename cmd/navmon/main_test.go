package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/constellation-monitor/catalog"
	"github.com/signalsfoundry/constellation-monitor/internal/logging"
	"github.com/signalsfoundry/constellation-monitor/internal/observability"
	"github.com/signalsfoundry/constellation-monitor/model"
)

const (
	issTLE = `ISS (ZARYA)
1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990
2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760
`
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBatchRun_SingleSatellite(t *testing.T) {
	ctx := context.Background()
	log := logging.Noop()

	lookup, err := loadEphemerides(ctx, log, writeFile(t, "catalog.tle", issTLE))
	if err != nil {
		t.Fatalf("loadEphemerides: %v", err)
	}
	if lookup("99999") != nil {
		t.Fatal("lookup resolved an unknown catalog number")
	}

	def := catalog.Constellation{
		Name:    "Test",
		Members: map[string]string{"ISS": "25544"},
		KeyPoints: map[string]model.LatLon{
			"Capital (Delhi)": {LatDeg: 28.7, LonDeg: 77.1},
		},
	}
	store := catalog.Build(def, lookup, false)
	active := store.Active()
	if len(active) != 1 {
		t.Fatalf("active satellites = %d, want 1", len(active))
	}

	collector, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	at := time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC)

	// One satellite can never satisfy a four-satellite geometry: the sweep
	// reports the failure per location instead of aborting.
	dopRows := dopSweep(ctx, log, collector, def, active, at, 5)
	if len(dopRows) != 1 {
		t.Fatalf("dop rows = %d, want 1", len(dopRows))
	}
	if dopRows[0].Error == "" {
		t.Errorf("single-satellite DOP succeeded unexpectedly: %+v", dopRows[0])
	}
	if dopRows[0].Location != "Capital (Delhi)" {
		t.Errorf("location = %q", dopRows[0].Location)
	}

	envRows := envelopeBatch(ctx, log, collector, active, at, 15*time.Minute, 2*time.Hour)
	if len(envRows) != 1 {
		t.Fatalf("envelope rows = %d, want 1", len(envRows))
	}
	env := envRows[0]
	if env.Error != "" {
		t.Fatalf("envelope failed: %s", env.Error)
	}
	// 2 h at 15 min gives 9 fenceposts, 7 interior samples.
	if env.Samples != 7 {
		t.Errorf("samples = %d, want 7", env.Samples)
	}
	if env.MinLatDeg < -52 || env.MaxLatDeg > 52 {
		t.Errorf("latitude envelope [%v, %v] outside inclination bound", env.MinLatDeg, env.MaxLatDeg)
	}
}

func TestAssessHealth_FromFile(t *testing.T) {
	ctx := context.Background()
	log := logging.Noop()

	history := `{
  "IRNSS-1B": [
    {"epoch": "2025-01-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164},
    {"epoch": "2025-02-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164},
    {"epoch": "2025-03-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164},
    {"epoch": "2025-04-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164},
    {"epoch": "2025-05-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164},
    {"epoch": "2025-06-01T00:00:00Z", "inclination_deg": 29.0, "sma_km": 42164}
  ],
  "UNKNOWN": []
}`

	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	healthMetrics, err := observability.NewHealthCollector(reg)
	if err != nil {
		t.Fatalf("NewHealthCollector: %v", err)
	}

	rows, err := assessHealth(ctx, log, collector, healthMetrics, catalog.NavIC(), writeFile(t, "elements.json", history))
	if err != nil {
		t.Fatalf("assessHealth: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Sorted by name: IRNSS-1B first.
	irnss := rows[0]
	if irnss.Satellite != "IRNSS-1B" || irnss.Error != "" {
		t.Fatalf("IRNSS-1B row = %+v", irnss)
	}
	if irnss.InclinationScore == nil || *irnss.InclinationScore != 100 {
		t.Errorf("inclination score = %v, want 100 for perfect hold", irnss.InclinationScore)
	}
	if irnss.ManeuverCount != 0 {
		t.Errorf("maneuver count = %d, want 0 for a quiet series", irnss.ManeuverCount)
	}

	// The empty series fails per satellite without aborting the batch.
	unknown := rows[1]
	if unknown.Satellite != "UNKNOWN" || unknown.Error == "" {
		t.Fatalf("UNKNOWN row = %+v, want per-satellite error", unknown)
	}
}
