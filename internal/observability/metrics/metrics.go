// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_interaction"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Interaction metrics
	InteractionsTotal   *prometheus.CounterVec
	InteractionDuration *prometheus.HistogramVec

	// Provider metrics
	ProviderLatency *prometheus.HistogramVec
	ProviderErrors  *prometheus.CounterVec

	// Synthesis metrics
	SynthesisLatency prometheus.Histogram
	SynthesisErrors  prometheus.Counter

	// Artifact metrics
	ArtifactsStored prometheus.Counter
	ArtifactBytes   prometheus.Counter
	ArtifactsSwept  prometheus.Counter

	// Store metrics
	StoreAppendLatency prometheus.Histogram
	StoreAppendErrors  prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		InteractionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Total number of interactions by request type and outcome",
		}, []string{"request_type", "status"}),
		InteractionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "interaction_duration_seconds",
			Help:      "End-to-end interaction duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"request_type"}),

		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Remote provider call latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"op"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Total number of remote provider failures",
		}, []string{"op"}),

		SynthesisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_latency_seconds",
			Help:      "Speech synthesis latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		SynthesisErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_errors_total",
			Help:      "Total number of speech synthesis failures",
		}),

		ArtifactsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_stored_total",
			Help:      "Total number of audio artifacts stored",
		}),
		ArtifactBytes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Total bytes of audio artifacts stored",
		}),
		ArtifactsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_swept_total",
			Help:      "Total number of audio artifacts removed by retention sweeps",
		}),

		StoreAppendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_append_latency_seconds",
			Help:      "Interaction log append latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		StoreAppendErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_append_errors_total",
			Help:      "Total number of interaction log append failures",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordInteraction records one completed interaction attempt.
func (m *Metrics) RecordInteraction(requestType, status string, durationSeconds float64) {
	m.InteractionsTotal.WithLabelValues(requestType, status).Inc()
	m.InteractionDuration.WithLabelValues(requestType).Observe(durationSeconds)
}

// RecordProviderCall records a remote provider call.
func (m *Metrics) RecordProviderCall(op string, err error, durationSeconds float64) {
	m.ProviderLatency.WithLabelValues(op).Observe(durationSeconds)
	if err != nil {
		m.ProviderErrors.WithLabelValues(op).Inc()
	}
}

// RecordSynthesis records a speech synthesis attempt.
func (m *Metrics) RecordSynthesis(err error, durationSeconds float64, bytes int) {
	m.SynthesisLatency.Observe(durationSeconds)
	if err != nil {
		m.SynthesisErrors.Inc()
		return
	}
	m.ArtifactsStored.Inc()
	m.ArtifactBytes.Add(float64(bytes))
}

// RecordAppend records an interaction log append.
func (m *Metrics) RecordAppend(err error, durationSeconds float64) {
	m.StoreAppendLatency.Observe(durationSeconds)
	if err != nil {
		m.StoreAppendErrors.Inc()
	}
}

// RecordArtifactSweep records artifacts removed by a retention sweep.
func (m *Metrics) RecordArtifactSweep(removed int) {
	m.ArtifactsSwept.Add(float64(removed))
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, durationSeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(durationSeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}
