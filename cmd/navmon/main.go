package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/signalsfoundry/constellation-monitor/catalog"
	"github.com/signalsfoundry/constellation-monitor/core"
	"github.com/signalsfoundry/constellation-monitor/ephem"
	"github.com/signalsfoundry/constellation-monitor/health"
	"github.com/signalsfoundry/constellation-monitor/internal/logging"
	"github.com/signalsfoundry/constellation-monitor/internal/observability"
	"github.com/signalsfoundry/constellation-monitor/model"
)

func main() {
	tlePath := flag.String("tle", "", "path to a three-line-element file covering the constellation")
	constellationID := flag.String("constellation", "navic", "constellation to monitor: navic, qzss or beidou3")
	atRaw := flag.String("at", "", "computation instant in RFC3339 (default: now)")
	maskDeg := flag.Float64("mask", 5, "elevation mask in degrees")
	step := flag.Duration("step", 15*time.Minute, "ground-track sample interval")
	window := flag.Duration("window", 36*time.Hour, "ground-track window length")
	includeInactive := flag.Bool("include-inactive", false, "include satellites with failed payloads in geometry")
	elementsPath := flag.String("elements", "", "optional JSON orbital-element history for health assessment")
	metricsAddr := flag.String("metrics-addr", "", "optional HTTP address for Prometheus /metrics")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	healthMetrics, err := observability.NewHealthCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise health metrics", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	at := time.Now().UTC()
	if *atRaw != "" {
		parsed, err := time.Parse(time.RFC3339, *atRaw)
		if err != nil {
			log.Error(ctx, "invalid -at instant", logging.String("value", *atRaw), logging.String("error", err.Error()))
			os.Exit(1)
		}
		at = parsed.UTC()
	}

	def, ok := catalog.ByName(*constellationID)
	if !ok {
		log.Error(ctx, "unknown constellation", logging.String("constellation", *constellationID))
		os.Exit(1)
	}

	if *tlePath == "" {
		log.Error(ctx, "missing required -tle flag")
		os.Exit(1)
	}
	lookup, err := loadEphemerides(ctx, log, *tlePath)
	if err != nil {
		log.Error(ctx, "failed to load element sets", logging.String("path", *tlePath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	store := catalog.Build(def, lookup, *includeInactive)
	active := store.Active()
	collector.SetCatalogCounts(len(store.Satellites()), len(active))
	log.Info(ctx, "catalog assembled",
		logging.String("constellation", def.Name),
		logging.Int("satellites", len(store.Satellites())),
		logging.Int("active", len(active)),
	)

	tracer := otel.Tracer("navmon")
	out := output{
		Constellation:    def.Name,
		At:               at,
		ElevationMaskDeg: *maskDeg,
	}

	// DOP sweep over the service-region key points.
	dopCtx, dopSpan := tracer.Start(ctx, "dop-sweep")
	out.DOP = dopSweep(dopCtx, log, collector, def, active, at, *maskDeg)
	dopSpan.End()

	// Ground-track envelopes across the constellation.
	envCtx, envSpan := tracer.Start(ctx, "envelope-batch")
	out.Envelopes = envelopeBatch(envCtx, log, collector, active, at, *step, *window)
	envSpan.End()

	// Composite health assessment, when an element history is supplied.
	if *elementsPath != "" {
		healthCtx, healthSpan := tracer.Start(ctx, "health-assessment")
		rows, err := assessHealth(healthCtx, log, collector, healthMetrics, def, *elementsPath)
		healthSpan.End()
		if err != nil {
			log.Error(ctx, "health assessment failed", logging.String("path", *elementsPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		out.Health = rows
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error(ctx, "failed to encode report", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

type output struct {
	Constellation    string        `json:"constellation"`
	At               time.Time     `json:"at"`
	ElevationMaskDeg float64       `json:"elevation_mask_deg"`
	DOP              []dopRow      `json:"dop"`
	Envelopes        []envelopeRow `json:"envelopes"`
	Health           []healthRow   `json:"health,omitempty"`
}

type dopRow struct {
	Location     string   `json:"location"`
	LatDeg       float64  `json:"lat_deg"`
	LonDeg       float64  `json:"lon_deg"`
	VisibleCount int      `json:"visible_count"`
	Visible      []string `json:"visible,omitempty"`
	GDOP         float64  `json:"gdop,omitempty"`
	PDOP         float64  `json:"pdop,omitempty"`
	HDOP         float64  `json:"hdop,omitempty"`
	VDOP         float64  `json:"vdop,omitempty"`
	TDOP         float64  `json:"tdop,omitempty"`
	Quality      string   `json:"quality,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type envelopeRow struct {
	Satellite  string    `json:"satellite"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MinLatDeg  float64   `json:"min_lat_deg"`
	MaxLatDeg  float64   `json:"max_lat_deg"`
	MeanLatDeg float64   `json:"mean_lat_deg"`
	MinLonDeg  float64   `json:"min_lon_deg"`
	MaxLonDeg  float64   `json:"max_lon_deg"`
	MeanLonDeg float64   `json:"mean_lon_deg"`
	Samples    int       `json:"samples"`
	Error      string    `json:"error,omitempty"`
}

type healthRow struct {
	Satellite        string   `json:"satellite"`
	Class            string   `json:"class,omitempty"`
	OverallScore     float64  `json:"overall_score"`
	Tier             string   `json:"tier,omitempty"`
	InclinationScore *float64 `json:"inclination_score,omitempty"`
	MaintenanceScore float64  `json:"maintenance_score"`
	UniformityScore  float64  `json:"uniformity_score"`
	DriftScore       *float64 `json:"drift_score,omitempty"`
	DriftStatus      string   `json:"drift_status,omitempty"`
	ManeuverCount    int      `json:"maneuver_count"`
	Remarks          []string `json:"remarks,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// loadEphemerides parses the TLE catalog once and returns a lookup from NORAD
// catalog number to propagator. Element sets that fail SGP4 initialisation
// are logged and skipped.
func loadEphemerides(ctx context.Context, log logging.Logger, path string) (catalog.EphemerisLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ephem.ParseTLE(f)
	if err != nil {
		return nil, err
	}

	props := make(map[string]core.Ephemeris, len(entries))
	for _, e := range entries {
		prop, err := e.Propagator()
		if err != nil {
			log.Warn(ctx, "skipping element set", logging.String("satellite", e.Name), logging.String("error", err.Error()))
			continue
		}
		props[e.NoradID] = prop
	}
	log.Info(ctx, "loaded element sets", logging.String("path", path), logging.Int("count", len(props)))

	return func(noradID string) core.Ephemeris {
		eph, ok := props[noradID]
		if !ok {
			return nil
		}
		return eph
	}, nil
}

func dopSweep(ctx context.Context, log logging.Logger, collector *observability.Collector, def catalog.Constellation, active []core.Satellite, at time.Time, maskDeg float64) []dopRow {
	names := make([]string, 0, len(def.KeyPoints))
	for name := range def.KeyPoints {
		names = append(names, name)
	}
	sort.Strings(names)

	thresholds := core.DefaultDOPThresholds()
	rows := make([]dopRow, 0, len(names))
	for _, name := range names {
		pt := def.KeyPoints[name]
		row := dopRow{Location: name, LatDeg: pt.LatDeg, LonDeg: pt.LonDeg}

		start := time.Now()
		result, visible, _, err := core.ComputeDOPForLocation(active, at, pt, maskDeg, thresholds)
		collector.ObserveComputation("dop", start, err)

		row.Visible = visible
		row.VisibleCount = len(visible)
		if err != nil {
			row.Error = err.Error()
			log.Warn(ctx, "DOP computation failed",
				logging.String("location", name),
				logging.Int("visible", len(visible)),
				logging.String("error", err.Error()),
			)
		} else {
			row.GDOP = result.GDOP
			row.PDOP = result.PDOP
			row.HDOP = result.HDOP
			row.VDOP = result.VDOP
			row.TDOP = result.TDOP
			row.Quality = string(result.Quality)
		}
		rows = append(rows, row)
	}
	return rows
}

func envelopeBatch(ctx context.Context, log logging.Logger, collector *observability.Collector, active []core.Satellite, at time.Time, step, window time.Duration) []envelopeRow {
	start := time.Now()
	envelopes, failures := core.EnvelopeBatch(active, at, step, window)

	var batchErr error
	if len(failures) > 0 {
		batchErr = fmt.Errorf("%d of %d envelopes failed", len(failures), len(active))
	}
	collector.ObserveComputation("envelope", start, batchErr)

	rows := make([]envelopeRow, 0, len(active))
	for _, sat := range active {
		if err, ok := failures[sat.Name]; ok {
			rows = append(rows, envelopeRow{Satellite: sat.Name, Error: err.Error()})
			log.Warn(ctx, "envelope computation failed", logging.String("satellite", sat.Name), logging.String("error", err.Error()))
			continue
		}
		env := envelopes[sat.Name]
		rows = append(rows, envelopeRow{
			Satellite:  env.Satellite,
			Start:      env.Start,
			End:        env.End,
			MinLatDeg:  env.MinLatDeg,
			MaxLatDeg:  env.MaxLatDeg,
			MeanLatDeg: env.MeanLatDeg,
			MinLonDeg:  env.MinLonDeg,
			MaxLonDeg:  env.MaxLonDeg,
			MeanLonDeg: env.MeanLonDeg,
			Samples:    len(env.Samples),
		})
	}
	return rows
}

// elementIn is one record of the -elements JSON history:
// {"IRNSS-1B": [{"epoch": ..., "inclination_deg": ..., "sma_km": ...}, ...]}
type elementIn struct {
	Epoch             time.Time `json:"epoch"`
	InclinationDeg    float64   `json:"inclination_deg"`
	SMAKm             float64   `json:"sma_km"`
	LonDriftDegPerDay *float64  `json:"lon_drift_deg_per_day,omitempty"`
	AltitudeKm        *float64  `json:"altitude_km,omitempty"`
}

func assessHealth(ctx context.Context, log logging.Logger, collector *observability.Collector, healthMetrics *observability.HealthCollector, def catalog.Constellation, path string) ([]healthRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var histories map[string][]elementIn
	if err := json.Unmarshal(data, &histories); err != nil {
		return nil, fmt.Errorf("parse element history: %w", err)
	}

	names := make([]string, 0, len(histories))
	for name := range histories {
		names = append(names, name)
	}
	sort.Strings(names)

	detectorCfg := health.DefaultDetectorConfig()
	tolerances := health.DefaultTolerances()

	rows := make([]healthRow, 0, len(names))
	overdue := 0
	for _, name := range names {
		series := make(model.ElementSeries, len(histories[name]))
		for i, rec := range histories[name] {
			series[i] = model.ElementRecord{
				Epoch:             rec.Epoch,
				InclinationDeg:    rec.InclinationDeg,
				SMAKm:             rec.SMAKm,
				LonDriftDegPerDay: rec.LonDriftDegPerDay,
				AltitudeKm:        rec.AltitudeKm,
			}
		}

		events := health.DetectManeuvers(series, detectorCfg)
		healthMetrics.AddDetectedManeuvers(len(events))

		start := time.Now()
		report, err := health.Assess(name, series, events, tolerances, def.Requirements, nil)
		healthMetrics.ObserveAssessment(time.Since(start))
		collector.ObserveComputation("health", start, err)
		if err != nil {
			rows = append(rows, healthRow{Satellite: name, Error: err.Error()})
			log.Warn(ctx, "health assessment failed", logging.String("satellite", name), logging.String("error", err.Error()))
			continue
		}

		if report.Pattern.EastWest.Overdue || report.Pattern.NorthSouth.Overdue {
			overdue++
		}
		rows = append(rows, healthRow{
			Satellite:        report.Satellite,
			Class:            string(report.Class),
			OverallScore:     report.OverallScore,
			Tier:             string(report.Tier),
			InclinationScore: report.InclinationScore,
			MaintenanceScore: report.MaintenanceScore,
			UniformityScore:  report.UniformityScore,
			DriftScore:       report.DriftScore,
			DriftStatus:      report.DriftStatus,
			ManeuverCount:    report.ManeuverCount,
			Remarks:          report.Remarks,
		})
		log.Info(ctx, "assessed satellite",
			logging.String("satellite", name),
			logging.Float64("score", report.OverallScore),
			logging.String("tier", string(report.Tier)),
		)
	}

	healthMetrics.SetAssessedCount(len(rows))
	healthMetrics.SetOverdueCount(overdue)
	return rows, nil
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
