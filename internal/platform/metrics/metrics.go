package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the records core.
// Collectors live in a private registry so tests and repeated CLI
// invocations never collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	RecordsArchived *prometheus.CounterVec
	RecordsRestored *prometheus.CounterVec
	RecordsPurged   *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	Lockouts        prometheus.Counter
	SweepDuration   prometheus.Histogram
	TextfileWritten prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordsArchived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nhplus_records_archived_total",
			Help: "Total number of records moved to the archive",
		}, []string{"kind"}),
		RecordsRestored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nhplus_records_restored_total",
			Help: "Total number of records restored from the archive",
		}, []string{"kind"}),
		RecordsPurged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nhplus_records_purged_total",
			Help: "Total number of archived records deleted by the retention sweep",
		}, []string{"kind"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nhplus_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Lockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "nhplus_lockouts_total",
			Help: "Number of times the login lockout was triggered",
		}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nhplus_retention_sweep_duration_seconds",
			Help:    "Duration of retention sweeps",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		TextfileWritten: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nhplus_textfile_written_timestamp_seconds",
			Help: "Unix time at which the invocation that owns these values wrote them",
		}),
	}
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncrementArchived(kind string) {
	m.RecordsArchived.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementRestored(kind string) {
	m.RecordsRestored.WithLabelValues(kind).Inc()
}

// AddPurged records n deleted rows of the given kind.
func (m *Metrics) AddPurged(kind string, n int) {
	if n <= 0 {
		return
	}
	m.RecordsPurged.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncrementLoginAttempt(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementLockouts() {
	m.Lockouts.Inc()
}

// ObserveSweep records the duration of a sweep.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSweep(start time.Time) {
	m.SweepDuration.Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
// A CLI process is too short-lived to be scraped, so it leaves its numbers
// behind on disk instead.
//
// Every invocation starts from zero and replaces the file, so the _total
// counters and the sweep histogram describe only the last command run, not
// a running total. nhplus_textfile_written_timestamp_seconds dates that
// run; alert on the per-run values or aggregate them with the timestamp
// rather than applying rate() to the counters.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	m.TextfileWritten.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, m.registry)
}
