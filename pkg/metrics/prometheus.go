package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	PayloadsDecoded prometheus.Counter
	DecodeFailures  *prometheus.CounterVec
	LegsReconciled  prometheus.Counter
	ChainStatus     *prometheus.CounterVec
	EventsPublished prometheus.Counter
	MergeTime       prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PayloadsDecoded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_decoded_total",
			Help:      "The total number of boarding pass payloads decoded",
		}),
		DecodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "The total number of payloads that could not be decoded",
		}, []string{"kind"}),
		LegsReconciled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legs_reconciled_total",
			Help:      "The total number of fresh legs merged into history",
		}),
		ChainStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "itineraries_chained_total",
			Help:      "Decoded itineraries by chain status",
		}, []string{"status"}),
		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "The total number of reconciled events published",
		}),
		MergeTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_duration_seconds",
			Help:      "Time spent holding the history lock",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
