// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomePassthrough = "passthrough"
)

// Recorder owns a private registry with the design pipeline metrics. A nil
// *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration prometheus.Histogram
	length   prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqopt",
			Name:      "requests_total",
			Help:      "Design requests by outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqopt",
			Name:      "failures_total",
			Help:      "Failed design requests by error class.",
		}, []string{"class"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqopt",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one design request.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seqopt",
			Name:      "sequence_length_nt",
			Help:      "Length of submitted sequences.",
			Buckets:   prometheus.ExponentialBuckets(50, 4, 8),
		}),
	}
	r.registry.MustRegister(r.requests, r.failures, r.duration, r.length)
	return r
}

// Observe records one finished request.
func (r *Recorder) Observe(outcome string, seqLen int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
	r.length.Observe(float64(seqLen))
}

// Failure counts a failure of the given class.
func (r *Recorder) Failure(class string) {
	if r == nil {
		return
	}
	r.failures.WithLabelValues(class).Inc()
}

// Registry exposes the underlying registry for tests and embedding.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
