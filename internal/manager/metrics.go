package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	submitOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hfocr",
			Subsystem: "inference",
			Name:      "outcomes_total",
			Help:      "Inference submissions by outcome kind",
		},
		[]string{"endpoint", "kind"},
	)

	submitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hfocr",
			Subsystem: "inference",
			Name:      "submit_duration_seconds",
			Help:      "Round-trip duration of inference submissions",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"endpoint"},
	)

	pagesRasterized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hfocr",
			Subsystem: "raster",
			Name:      "pages_total",
			Help:      "Pages rendered from uploaded PDFs",
		},
	)

	conversionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hfocr",
			Subsystem: "raster",
			Name:      "failures_total",
			Help:      "PDF uploads that could not be converted",
		},
	)
)

func init() {
	prometheus.MustRegister(submitOutcomes, submitDuration, pagesRasterized, conversionFailures)
}

// outcomeLabel is "success" for nil errors, otherwise the inference kind.
func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	if k := inferenceKind(err); k != "" {
		return k
	}
	return "other"
}
