package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for the scheduling engine.
type EngineMetrics struct {
	gapQueries       *prometheus.CounterVec
	gapsPerQuery     prometheus.Histogram
	validationsTotal *prometheus.CounterVec
	batchItemsTotal  *prometheus.CounterVec
	batchLatency     prometheus.Histogram
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		gapQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agenda",
			Subsystem: "availability",
			Name:      "gap_queries_total",
			Help:      "Total free-gap computations",
		}, []string{"outcome"}),
		gapsPerQuery: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agenda",
			Subsystem: "availability",
			Name:      "gaps_per_query",
			Help:      "Free gaps returned per computation",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agenda",
			Subsystem: "booking",
			Name:      "validations_total",
			Help:      "Total appointment validations by outcome",
		}, []string{"outcome"}),
		batchItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agenda",
			Subsystem: "planner",
			Name:      "batch_items_total",
			Help:      "Treatment-plan items processed by batch scheduling",
		}, []string{"result"}),
		batchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agenda",
			Subsystem: "planner",
			Name:      "batch_duration_seconds",
			Help:      "Latency of a batch scheduling run",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.gapQueries, m.gapsPerQuery, m.validationsTotal, m.batchItemsTotal, m.batchLatency)
	return m
}

// ObserveGapQuery records one gap computation and how many gaps it produced.
func (m *EngineMetrics) ObserveGapQuery(outcome string, gaps int) {
	if m == nil {
		return
	}
	m.gapQueries.WithLabelValues(outcome).Inc()
	m.gapsPerQuery.Observe(float64(gaps))
}

// ObserveValidation records one conflict validation by outcome
// ("ok", "invalid_interval", "professional_conflict", "patient_conflict").
func (m *EngineMetrics) ObserveValidation(outcome string) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBatch records the outcome counts and latency of one batch run.
func (m *EngineMetrics) ObserveBatch(placed, unplaced int, seconds float64) {
	if m == nil {
		return
	}
	m.batchItemsTotal.WithLabelValues("placed").Add(float64(placed))
	m.batchItemsTotal.WithLabelValues("unplaced").Add(float64(unplaced))
	m.batchLatency.Observe(seconds)
}
