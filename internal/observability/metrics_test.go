package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveComputationRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	start := time.Now().Add(-10 * time.Millisecond)
	collector.ObserveComputation("dop", start, nil)
	collector.ObserveComputation("dop", start, errors.New("ill-conditioned"))
	collector.ObserveComputation("envelope", start, nil)

	if got := testutil.ToFloat64(collector.Computations.WithLabelValues("dop", "ok")); got != 1 {
		t.Fatalf("navmon_computations_total{dop,ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Computations.WithLabelValues("dop", "error")); got != 1 {
		t.Fatalf("navmon_computations_total{dop,error} = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "navmon_computation_duration_seconds", map[string]string{
		"engine": "dop",
	}); count != 2 {
		t.Fatalf("navmon_computation_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestNewCollectorToleratesReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector first: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector second: %v", err)
	}

	// Both handles drive the same registered collectors.
	first.Computations.WithLabelValues("dop", "ok").Inc()
	second.Computations.WithLabelValues("dop", "ok").Inc()
	if got := testutil.ToFloat64(first.Computations.WithLabelValues("dop", "ok")); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func TestMetricsHandlerExposesCatalogGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.SetCatalogCounts(7, 4)
	collector.Computations.WithLabelValues("dop", "ok").Inc()
	collector.ComputationDurations.WithLabelValues("dop").Observe(0.01)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"navmon_computations_total",
		"navmon_computation_duration_seconds",
		"navmon_catalog_satellites",
		"navmon_catalog_active_satellites",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
	if !strings.Contains(body, "navmon_catalog_satellites 7") {
		t.Fatalf("/metrics output missing catalog gauge value: %s", body)
	}
	if !strings.Contains(body, "navmon_catalog_active_satellites 4") {
		t.Fatalf("/metrics output missing active gauge value: %s", body)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
