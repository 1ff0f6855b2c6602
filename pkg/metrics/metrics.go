// Package metrics exposes decoding counters through Prometheus.
package metrics

import (
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks decoding outcomes.
type Recorder struct {
	entries   *prometheus.CounterVec
	illegible prometheus.Counter
	batchSize prometheus.Histogram
}

// New creates a Recorder and registers its collectors on reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankocr_entries_total",
				Help: "Total number of decoded entries by status",
			},
			[]string{"status"},
		),
		illegible: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bankocr_illegible_glyphs_total",
			Help: "Total number of glyphs that matched no digit",
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankocr_batch_size",
			Help:    "Number of entries per decoded batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
	reg.MustRegister(r.entries, r.illegible, r.batchSize)
	return r
}

// ObserveEntry records the outcome of one entry. Safe on a nil Recorder.
func (r *Recorder) ObserveEntry(e domain.Entry) {
	if r == nil {
		return
	}
	r.entries.WithLabelValues(string(e.Status)).Inc()
	r.illegible.Add(float64(len(e.Reading.Illegible)))
}

// ObserveBatch records the size of a batch. Safe on a nil Recorder.
func (r *Recorder) ObserveBatch(b domain.Batch) {
	if r == nil {
		return
	}
	r.batchSize.Observe(float64(len(b.Entries)))
}
