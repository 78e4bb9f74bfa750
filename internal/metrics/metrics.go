package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the sync engine.
type Metrics struct {
	registry                *prometheus.Registry
	snapshotRefreshesTotal  prometheus.Counter
	deltaPollsTotal         prometheus.Counter
	fetchErrorsTotal        prometheus.Counter
	changesDetectedTotal    prometheus.Counter
	notificationsDispatched prometheus.Counter
	knownPavilions          prometheus.Gauge
	watchedPavilions        prometheus.Gauge
}

// New creates and registers the engine's Prometheus metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	snapshotRefreshesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pavilion_snapshot_refreshes_total",
		Help: "Total number of successful full snapshot refreshes",
	})
	deltaPollsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pavilion_delta_polls_total",
		Help: "Total number of successful delta polls",
	})
	fetchErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pavilion_fetch_errors_total",
		Help: "Total number of failed feed fetches",
	})
	changesDetectedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pavilion_changes_detected_total",
		Help: "Total number of slot status transitions detected",
	})
	notificationsDispatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pavilion_notifications_dispatched_total",
		Help: "Total number of notifications dispatched to the worker pool",
	})
	knownPavilions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pavilion_known_total",
		Help: "Number of pavilions currently in the status store",
	})
	watchedPavilions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pavilion_watched_total",
		Help: "Number of pavilions on the watch list",
	})

	registry.MustRegister(
		snapshotRefreshesTotal,
		deltaPollsTotal,
		fetchErrorsTotal,
		changesDetectedTotal,
		notificationsDispatched,
		knownPavilions,
		watchedPavilions,
	)

	return &Metrics{
		registry:                registry,
		snapshotRefreshesTotal:  snapshotRefreshesTotal,
		deltaPollsTotal:         deltaPollsTotal,
		fetchErrorsTotal:        fetchErrorsTotal,
		changesDetectedTotal:    changesDetectedTotal,
		notificationsDispatched: notificationsDispatched,
		knownPavilions:          knownPavilions,
		watchedPavilions:        watchedPavilions,
	}
}

// IncSnapshotRefreshes increments the snapshot refresh counter.
func (m *Metrics) IncSnapshotRefreshes() { m.snapshotRefreshesTotal.Inc() }

// IncDeltaPolls increments the delta poll counter.
func (m *Metrics) IncDeltaPolls() { m.deltaPollsTotal.Inc() }

// IncFetchErrors increments the fetch error counter.
func (m *Metrics) IncFetchErrors() { m.fetchErrorsTotal.Inc() }

// AddChangesDetected adds n to the change counter.
func (m *Metrics) AddChangesDetected(n int) { m.changesDetectedTotal.Add(float64(n)) }

// IncNotificationsDispatched increments the dispatch counter.
func (m *Metrics) IncNotificationsDispatched() { m.notificationsDispatched.Inc() }

// SetKnownPavilions sets the known pavilion gauge.
func (m *Metrics) SetKnownPavilions(n int) { m.knownPavilions.Set(float64(n)) }

// SetWatchedPavilions sets the watched pavilion gauge.
func (m *Metrics) SetWatchedPavilions(n int) { m.watchedPavilions.Set(float64(n)) }

// Handler returns an http.Handler that serves the metrics. updateGauges
// is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
