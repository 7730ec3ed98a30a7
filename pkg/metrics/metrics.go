// Package metrics defines the Prometheus collectors recorded during a batch
// run and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for a run.
type Metrics struct {
	QueriesParsedTotal *prometheus.CounterVec
	DocsIndexedTotal   prometheus.Counter
	VocabularySize     prometheus.Gauge
	PostingsTotal      prometheus.Gauge
	EvaluationLatency  prometheus.Histogram
	ResultHits         prometheus.Histogram
	RowsWrittenTotal   *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QueriesParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_queries_parsed_total",
				Help: "Queries parsed by result (ok, syntax_error).",
			},
			[]string{"result"},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "boolsearch_docs_indexed_total",
				Help: "Documents scanned into the postings store.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "boolsearch_vocabulary_size",
				Help: "Distinct terms referenced by the parsed queries.",
			},
		),
		PostingsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "boolsearch_postings_total",
				Help: "Total postings held by the store after construction.",
			},
		),
		EvaluationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "boolsearch_evaluation_latency_seconds",
				Help:    "Expression tree evaluation latency per query.",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		ResultHits: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "boolsearch_result_hits",
				Help:    "Relevant documents per evaluated query.",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 10000},
			},
		),
		RowsWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_rows_written_total",
				Help: "Records written by sink: relevance rows, or result events for kafka.",
			},
			[]string{"sink"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boolsearch_stage_duration_seconds",
				Help:    "Wall time of each pipeline stage.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"stage"},
		),
	}

	reg.MustRegister(
		m.QueriesParsedTotal,
		m.DocsIndexedTotal,
		m.VocabularySize,
		m.PostingsTotal,
		m.EvaluationLatency,
		m.ResultHits,
		m.RowsWrittenTotal,
		m.StageDuration,
	)

	return m
}

// NewUnregistered returns collectors bound to a private registry, for tests
// and library callers that do not scrape.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler returns the Prometheus scrape HTTP handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
