package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HealthCollector exposes health-assessment-specific Prometheus metrics.
type HealthCollector struct {
	gatherer prometheus.Gatherer

	AssessmentDuration prometheus.Histogram
	SatellitesAssessed prometheus.Gauge
	ManeuversDetected  prometheus.Counter
	OverdueSatellites  prometheus.Gauge
}

// NewHealthCollector registers health metrics against the provided registerer.
func NewHealthCollector(reg prometheus.Registerer) (*HealthCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	assessHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "navmon_health_assessment_duration_seconds",
		Help:    "Duration of per-satellite composite health assessments.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
	assessHistogram, err := registerHistogram(reg, assessHistogram, "navmon_health_assessment_duration_seconds")
	if err != nil {
		return nil, err
	}

	assessedGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navmon_health_satellites_assessed",
		Help: "Number of satellites assessed in the most recent batch.",
	})
	assessedGauge, err = registerGauge(reg, assessedGauge, "navmon_health_satellites_assessed")
	if err != nil {
		return nil, err
	}

	maneuvers := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "navmon_maneuvers_detected_total",
		Help: "Cumulative number of station-keeping maneuvers detected across runs.",
	})
	maneuvers, err = registerCounter(reg, maneuvers, "navmon_maneuvers_detected_total")
	if err != nil {
		return nil, err
	}

	overdueGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navmon_health_overdue_satellites",
		Help: "Number of satellites with an overdue maneuver class in the most recent batch.",
	})
	overdueGauge, err = registerGauge(reg, overdueGauge, "navmon_health_overdue_satellites")
	if err != nil {
		return nil, err
	}

	return &HealthCollector{
		gatherer:           gatherer,
		AssessmentDuration: assessHistogram,
		SatellitesAssessed: assessedGauge,
		ManeuversDetected:  maneuvers,
		OverdueSatellites:  overdueGauge,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *HealthCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveAssessment records one assessment duration measurement.
func (c *HealthCollector) ObserveAssessment(d time.Duration) {
	if c == nil || c.AssessmentDuration == nil {
		return
	}
	c.AssessmentDuration.Observe(d.Seconds())
}

// SetAssessedCount updates the assessed-satellites gauge.
func (c *HealthCollector) SetAssessedCount(count int) {
	if c == nil || c.SatellitesAssessed == nil {
		return
	}
	c.SatellitesAssessed.Set(float64(count))
}

// AddDetectedManeuvers adds detected maneuvers to the running counter.
func (c *HealthCollector) AddDetectedManeuvers(count int) {
	if c == nil || c.ManeuversDetected == nil || count <= 0 {
		return
	}
	c.ManeuversDetected.Add(float64(count))
}

// SetOverdueCount updates the overdue-satellites gauge.
func (c *HealthCollector) SetOverdueCount(count int) {
	if c == nil || c.OverdueSatellites == nil {
		return
	}
	c.OverdueSatellites.Set(float64(count))
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
