package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHealthCollectorRecordsAssessments(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewHealthCollector(reg)
	if err != nil {
		t.Fatalf("NewHealthCollector: %v", err)
	}

	collector.ObserveAssessment(12 * time.Millisecond)
	collector.ObserveAssessment(30 * time.Millisecond)
	collector.SetAssessedCount(5)
	collector.SetOverdueCount(2)
	collector.AddDetectedManeuvers(3)
	collector.AddDetectedManeuvers(-1) // ignored

	if count := histogramSampleCount(t, reg, "navmon_health_assessment_duration_seconds", nil); count != 2 {
		t.Fatalf("assessment duration sample_count = %d, want 2", count)
	}
	if got := testutil.ToFloat64(collector.SatellitesAssessed); got != 5 {
		t.Fatalf("navmon_health_satellites_assessed = %v, want 5", got)
	}
	if got := testutil.ToFloat64(collector.OverdueSatellites); got != 2 {
		t.Fatalf("navmon_health_overdue_satellites = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.ManeuversDetected); got != 3 {
		t.Fatalf("navmon_maneuvers_detected_total = %v, want 3", got)
	}
}

func TestHealthCollectorNilSafety(t *testing.T) {
	var collector *HealthCollector
	collector.ObserveAssessment(time.Millisecond)
	collector.SetAssessedCount(1)
	collector.SetOverdueCount(1)
	collector.AddDetectedManeuvers(1)
	if collector.Gatherer() != nil {
		t.Fatal("nil collector returned a gatherer")
	}
}
