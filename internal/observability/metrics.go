package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Exclusion reason labels for RowsExcluded.
const (
	ReasonIdentifier = "identifier"
	ReasonMalformed  = "malformed_field"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline and its adapters.
type Metrics struct {
	ReportsGenerated prometheus.Counter
	RowsProcessed    prometheus.Counter
	RowsAccepted     prometheus.Counter
	RowsExcluded     *prometheus.CounterVec // labels: reason={identifier,malformed_field}
	SchemaErrors     prometheus.Counter

	AnalyzeDuration prometheus.Histogram
	GroupsPerReport prometheus.Histogram

	// Report publisher metrics.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "reports_generated_total",
			Help:      "Total reports produced by the analysis pipeline.",
		}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "rows_processed_total",
			Help:      "Total input rows read across all runs.",
		}),
		RowsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "rows_accepted_total",
			Help:      "Total rows accepted into aggregation.",
		}),
		RowsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "rows_excluded_total",
			Help:      "Rows excluded from aggregation by reason.",
		}, []string{"reason"}),
		SchemaErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "schema_errors_total",
			Help:      "Uploads rejected for missing required columns.",
		}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_report",
			Name:      "analyze_duration_seconds",
			Help:      "Duration of a complete validate-classify-aggregate run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		GroupsPerReport: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_report",
			Name:      "groups_per_report",
			Help:      "Number of (station, pcode) groups per generated report.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "reports_published_total",
			Help:      "Reports published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_report",
			Name:      "publish_errors_total",
			Help:      "Failed report publish attempts.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_report",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka report publisher is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ReportsGenerated,
		m.RowsProcessed,
		m.RowsAccepted,
		m.RowsExcluded,
		m.SchemaErrors,
		m.AnalyzeDuration,
		m.GroupsPerReport,
		m.ReportsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "reports_generated_total"}),
		RowsProcessed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "rows_processed_total"}),
		RowsAccepted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "rows_accepted_total"}),
		RowsExcluded:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "station_report", Name: "rows_excluded_total"}, []string{"reason"}),
		SchemaErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "schema_errors_total"}),
		AnalyzeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_report", Name: "analyze_duration_seconds"}),
		GroupsPerReport:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_report", Name: "groups_per_report"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "reports_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_report", Name: "publish_errors_total"}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "station_report", Name: "publisher_enabled"}),
	}
}
