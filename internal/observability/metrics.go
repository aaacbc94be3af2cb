package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// impact assessment service.
type Metrics struct {
	ImpactCalculations     prometheus.Counter
	DeflectionCalculations *prometheus.CounterVec   // labels: method, outcome={success,unknown_method,error}
	ValidationRuns         prometheus.Counter
	CalculationDuration    *prometheus.HistogramVec // label: kind={impact,deflection}

	// Threat feed pipeline metrics.
	FeedCycles           prometheus.Counter
	FeedErrors           prometheus.Counter
	FeedRunning          prometheus.Gauge
	AssessmentsPublished prometheus.Counter
	AssessmentErrors     prometheus.Counter
	FeedBatchSize        prometheus.Histogram

	// NeoWs catalog client metrics.
	NeoRequests    *prometheus.CounterVec   // labels: endpoint={feed,lookup}, outcome={success,error,rate_limited}
	NeoCache       *prometheus.CounterVec   // labels: endpoint, result={hit,miss}
	NeoAPIDuration *prometheus.HistogramVec // label: endpoint
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ImpactCalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "impact_calculations_total",
			Help:      "Total impact assessments computed.",
		}),
		DeflectionCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "deflection_calculations_total",
			Help:      "Deflection calculations by method and outcome.",
		}, []string{"method", "outcome"}),
		ValidationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "validation_runs_total",
			Help:      "Total historical validation suite runs.",
		}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "calculation_duration_seconds",
			Help:      "Core model chain duration by calculation kind.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"kind"}),
		FeedCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "feed_cycles_total",
			Help:      "Total threat feed poll cycles.",
		}),
		FeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "feed_errors_total",
			Help:      "Total threat feed extract or publish failures.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "feed_running",
			Help:      "1 when the threat feed pipeline is active, 0 when shut down.",
		}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "assessments_published_total",
			Help:      "Total threat assessments written to the sink topic.",
		}),
		AssessmentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "assessment_errors_total",
			Help:      "Total per-object assessment failures (skipped objects).",
		}),
		FeedBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "feed_batch_size",
			Help:      "Number of catalogued objects per feed poll.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		NeoRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "neo_requests_total",
			Help:      "NeoWs API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		NeoCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "neo_cache_total",
			Help:      "NeoWs lookup cache results.",
		}, []string{"endpoint", "result"}),
		NeoAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "neo_api_duration_seconds",
			Help:      "NeoWs API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}

	prometheus.MustRegister(
		m.ImpactCalculations,
		m.DeflectionCalculations,
		m.ValidationRuns,
		m.CalculationDuration,
		m.FeedCycles,
		m.FeedErrors,
		m.FeedRunning,
		m.AssessmentsPublished,
		m.AssessmentErrors,
		m.FeedBatchSize,
		m.NeoRequests,
		m.NeoCache,
		m.NeoAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ImpactCalculations:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "impact_calculations_total"}),
		DeflectionCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "deflection_calculations_total"}, []string{"method", "outcome"}),
		ValidationRuns:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "validation_runs_total"}),
		CalculationDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "impact_sim", Name: "calculation_duration_seconds"}, []string{"kind"}),
		FeedCycles:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "feed_cycles_total"}),
		FeedErrors:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "feed_errors_total"}),
		FeedRunning:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "impact_sim", Name: "feed_running"}),
		AssessmentsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "assessments_published_total"}),
		AssessmentErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "impact_sim", Name: "assessment_errors_total"}),
		FeedBatchSize:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "impact_sim", Name: "feed_batch_size"}),
		NeoRequests:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "neo_requests_total"}, []string{"endpoint", "outcome"}),
		NeoCache:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "impact_sim", Name: "neo_cache_total"}, []string{"endpoint", "result"}),
		NeoAPIDuration:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "impact_sim", Name: "neo_api_duration_seconds"}, []string{"endpoint"}),
	}
}
