package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream service labels.
const (
	ServiceSearch   = "search"
	ServicePrefixes = "prefixes"
)

var (
	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asn2ip_runs_total",
		Help: "Lookup runs by final status",
	}, []string{"status"})

	upstreamFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asn2ip_upstream_failures_total",
		Help: "Failed upstream lookups by service",
	}, []string{"service"})

	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "asn2ip_run_duration_seconds",
		Help:    "Wall time of a lookup run",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	historyRunsDesc = prometheus.NewDesc(
		"asn2ip_history_runs",
		"Recorded runs in the history store by status",
		[]string{"status"},
		nil,
	)
)

// RunCounter reports persisted run counts per status.
type RunCounter interface {
	CountRunsByStatus(ctx context.Context) (map[string]int64, error)
}

// HistoryCollector is a custom Prometheus collector that reads run counts
// from the history store on each scrape.
type HistoryCollector struct {
	store RunCounter
}

// NewHistoryCollector creates a collector backed by store.
func NewHistoryCollector(store RunCounter) *HistoryCollector {
	return &HistoryCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *HistoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- historyRunsDesc
}

// Collect queries the store for run counts and emits them as gauges.
func (c *HistoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.store.CountRunsByStatus(ctx)
	if err != nil {
		slog.Error("failed to collect run history metrics", "error", err)
		return
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			historyRunsDesc,
			prometheus.GaugeValue,
			float64(n),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers the pipeline metrics, plus the history collector when store
// is non-nil. Must be called once at startup.
func Init(store RunCounter) {
	initOnce.Do(func() {
		prometheus.MustRegister(runsTotal, upstreamFailures, runDuration)
		if store != nil {
			prometheus.MustRegister(NewHistoryCollector(store))
		}
	})
}

// RecordRun records the outcome and duration of a run.
func RecordRun(status string, d time.Duration) {
	runsTotal.WithLabelValues(status).Inc()
	runDuration.Observe(d.Seconds())
}

// RecordUpstreamFailure counts a failed lookup against service.
func RecordUpstreamFailure(service string) {
	upstreamFailures.WithLabelValues(service).Inc()
}
