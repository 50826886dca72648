package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the monitor's computation engines
// and provides a ready-to-serve /metrics handler.
type Collector struct {
	gatherer prometheus.Gatherer

	Computations         *prometheus.CounterVec
	ComputationDurations *prometheus.HistogramVec

	CatalogSatellites prometheus.Gauge
	ActiveSatellites  prometheus.Gauge
}

// NewCollector registers monitor Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navmon_computations_total",
		Help: "Total number of completed computations, labeled by engine and outcome.",
	}, []string{"engine", "outcome"})
	computations, err := registerCounterVec(reg, computations, "navmon_computations_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "navmon_computation_duration_seconds",
		Help:    "Computation latency in seconds, labeled by engine.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"engine"})
	durations, err = registerHistogramVec(reg, durations, "navmon_computation_duration_seconds")
	if err != nil {
		return nil, err
	}

	satellites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navmon_catalog_satellites",
		Help: "Current number of registered satellites.",
	}), "navmon_catalog_satellites")
	if err != nil {
		return nil, err
	}
	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navmon_catalog_active_satellites",
		Help: "Current number of active satellites with an ephemeris attached.",
	}), "navmon_catalog_active_satellites")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:             gatherer,
		Computations:         computations,
		ComputationDurations: durations,
		CatalogSatellites:    satellites,
		ActiveSatellites:     active,
	}, nil
}

// ObserveComputation records one completed engine run: its duration and its
// outcome ("ok" or "error"). Callers pass the start time captured before the
// computation.
func (c *Collector) ObserveComputation(engine string, start time.Time, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if c.Computations != nil {
		c.Computations.WithLabelValues(engine, outcome).Inc()
	}
	if c.ComputationDurations != nil {
		c.ComputationDurations.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	}
}

// SetCatalogCounts drives the catalog gauges from the store's current state.
func (c *Collector) SetCatalogCounts(total, active int) {
	if c == nil {
		return
	}
	if c.CatalogSatellites != nil {
		c.CatalogSatellites.Set(float64(total))
	}
	if c.ActiveSatellites != nil {
		c.ActiveSatellites.Set(float64(active))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
