// Package metrics exports evaluation results as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	auc "github.com/jamesainslie/go-auc"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics (default: "auc").
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets the buckets of the evaluation duration histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry records into registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// Recorder collects evaluation results in a Prometheus registry.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	rocAUC    *prometheus.GaugeVec
	prAUC     *prometheus.GaugeVec
	samples   *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
	undefined *prometheus.CounterVec
}

// New creates a Recorder with all metrics registered.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "auc",
		buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.rocAUC = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "roc_auc",
		Help:      "Area under the ROC curve of the last evaluation",
	}, []string{"dataset"})
	r.prAUC = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "pr_auc",
		Help:      "Area under the precision-recall curve of the last evaluation",
	}, []string{"dataset", "algorithm"})
	r.samples = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "samples",
		Help:      "Number of samples in the last evaluated batch by class",
	}, []string{"dataset", "class"})
	r.duration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent computing curves and areas",
		Buckets:   r.buckets,
	}, []string{"dataset"})
	r.undefined = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "undefined_total",
		Help:      "Evaluations that produced no result",
	}, []string{"dataset"})

	return r
}

// Observe records the report of one evaluation of dataset.
func (r *Recorder) Observe(dataset string, rep auc.Report, took time.Duration) {
	r.rocAUC.WithLabelValues(dataset).Set(rep.ROCAUC)
	r.prAUC.WithLabelValues(dataset, rep.Algorithm.String()).Set(rep.PRAUC)
	r.samples.WithLabelValues(dataset, "positive").Set(float64(rep.Positives))
	r.samples.WithLabelValues(dataset, "negative").Set(float64(rep.Negatives))
	r.duration.WithLabelValues(dataset).Observe(took.Seconds())
}

// Undefined records an evaluation of dataset that produced no result.
func (r *Recorder) Undefined(dataset string) {
	r.undefined.WithLabelValues(dataset).Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node exporter's textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
