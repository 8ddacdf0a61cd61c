package observability

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/riskibarqy/fantasy-badminton/internal/usecase"
)

const (
	metricsNamespace = "fantasy_badminton"
	metricsSubsystem = "ingest"
)

// RunMetrics holds the gauges describing the last ingestion run.
// A batch job exits before any scrape, so values are pushed to a Pushgateway.
type RunMetrics struct {
	registry *prometheus.Registry

	lastRunTimestamp  prometheus.Gauge
	lastRunSuccess    prometheus.Gauge
	runDuration       prometheus.Gauge
	daysScraped       prometheus.Gauge
	matchesScraped    prometheus.Gauge
	matchesProcessed  prometheus.Gauge
	pointsAwarded     prometheus.Gauge
	newMatches        prometheus.Gauge
	skippedUnresolved prometheus.Gauge
	unresolvedNames   prometheus.Gauge
	matchErrors       prometheus.Gauge
	datesIngested     prometheus.Gauge
}

func NewRunMetrics() *RunMetrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &RunMetrics{
		registry:          registry,
		lastRunTimestamp:  gauge("last_run_timestamp_seconds", "Unix time the last ingestion run finished"),
		lastRunSuccess:    gauge("last_run_success", "1 when the last ingestion run completed without a fatal error"),
		runDuration:       gauge("last_run_duration_seconds", "Wall time of the last ingestion run"),
		daysScraped:       gauge("days_scraped", "Feed days extracted by the last run"),
		matchesScraped:    gauge("matches_scraped", "Completed matches extracted by the last run"),
		matchesProcessed:  gauge("matches_processed", "Matches scored by the last run"),
		pointsAwarded:     gauge("points_awarded", "Points awarded by the last run"),
		newMatches:        gauge("new_match_records", "Match records created by the last run"),
		skippedUnresolved: gauge("matches_skipped_unresolved", "Matches skipped because the winner is not in the registry"),
		unresolvedNames:   gauge("unresolved_names", "Distinct participant names not found in the registry"),
		matchErrors:       gauge("match_errors", "Matches that failed to write"),
		datesIngested:     gauge("dates_ingested", "Day labels committed to the ledger by the last run"),
	}
}

func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records report. runErr marks the run as failed but partial counters are kept.
func (m *RunMetrics) Observe(report usecase.RunReport, runErr error) {
	success := 1.0
	if runErr != nil {
		success = 0
	}
	m.lastRunSuccess.Set(success)
	if !report.FinishedAt.IsZero() {
		m.lastRunTimestamp.Set(float64(report.FinishedAt.Unix()))
		m.runDuration.Set(report.FinishedAt.Sub(report.StartedAt).Seconds())
	}

	result := report.Result
	m.daysScraped.Set(float64(len(report.DayBatches)))
	m.matchesScraped.Set(float64(report.TotalMatches))
	m.matchesProcessed.Set(float64(result.MatchesProcessed))
	m.pointsAwarded.Set(float64(result.PointsAwarded))
	m.newMatches.Set(float64(result.NewMatchesCreated))
	m.skippedUnresolved.Set(float64(result.SkippedUnresolved))
	m.unresolvedNames.Set(float64(len(result.UnresolvedNames)))
	m.matchErrors.Set(float64(len(result.Errors)))
	m.datesIngested.Set(float64(len(result.DatesIngested)))
}

// Push replaces the job's metric group on the gateway. An empty gatewayURL is a no-op.
func (m *RunMetrics) Push(ctx context.Context, gatewayURL, job, instance string) error {
	if strings.TrimSpace(gatewayURL) == "" {
		return nil
	}

	pusher := push.New(gatewayURL, job).Gatherer(m.registry)
	if instance != "" {
		pusher = pusher.Grouping("instance", instance)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return crerr.Wrapf(err, "push metrics to %s", gatewayURL)
	}
	return nil
}
