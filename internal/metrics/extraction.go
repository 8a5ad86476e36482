package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Keyword extraction and search Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchable",
			Name:      "extraction_requests_total",
			Help:      "Total number of keyword extraction calls",
		},
		[]string{"extractor", "status"},
	)

	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchable",
			Name:      "extraction_duration_seconds",
			Help:      "Keyword extraction duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"extractor"},
	)

	KeywordsExtractedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchable",
			Name:      "keywords_extracted_total",
			Help:      "Total normalized keywords produced by extraction",
		},
		[]string{"extractor"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchable",
			Name:      "search_requests_total",
			Help:      "Total number of keyword searches",
		},
		[]string{"collection", "scored"},
	)
)

var registerExtraction sync.Once

// RegisterExtractionMetrics registers extraction and search metrics on the
// default registry. Safe to call more than once.
func RegisterExtractionMetrics() {
	registerExtraction.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

// Collectors returns the extraction and search collectors for registration
// on a caller-owned registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ExtractionRequestsTotal,
		ExtractionDuration,
		KeywordsExtractedTotal,
		SearchRequestsTotal,
	}
}
