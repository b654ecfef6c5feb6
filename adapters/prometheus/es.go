package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/metrics"
)

// esMetrics implements es.Metrics using Prometheus.
type esMetrics struct {
	fetchDuration   prometheus.Histogram
	appendDuration  prometheus.Histogram
	eventsAppended  prometheus.Counter
	conflictsTotal  prometheus.Counter
	commandDuration *prometheus.HistogramVec
	commandRetries  *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewESMetrics creates a new Prometheus implementation of es.Metrics.
func NewESMetrics(reg prometheus.Registerer) es.Metrics {
	m := &esMetrics{
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "agora_eventstore_fetch_duration_seconds",
			Help:    "Event store fetch time in seconds",
			Buckets: defaultBuckets,
		}),

		appendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "agora_eventstore_append_duration_seconds",
			Help:    "Event store append time in seconds",
			Buckets: defaultBuckets,
		}),

		eventsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agora_eventstore_events_appended_total",
			Help: "Total number of events appended",
		}),

		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agora_eventstore_concurrency_conflicts_total",
			Help: "Total number of optimistic concurrency conflicts",
		}),

		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agora_command_duration_seconds",
			Help:    "Command handling time in seconds, retries included",
			Buckets: defaultBuckets,
		}, []string{"command"}),

		commandRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agora_command_retries_total",
			Help: "Total number of command retries after a conflict",
		}, []string{"command"}),

		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agora_notifications_sent_total",
			Help: "Total number of notifications sent",
		}, []string{"event_kind"}),

		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agora_readmodel_cache_hits_total",
			Help: "Total number of decoded stream cache hits",
		}),

		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agora_readmodel_cache_misses_total",
			Help: "Total number of decoded stream cache misses",
		}),
	}

	reg.MustRegister(
		m.fetchDuration,
		m.appendDuration,
		m.eventsAppended,
		m.conflictsTotal,
		m.commandDuration,
		m.commandRetries,
		m.notifications,
		m.cacheHits,
		m.cacheMisses,
	)

	return m
}

func (m *esMetrics) FetchDuration() metrics.Timer {
	return newTimer(m.fetchDuration)
}

func (m *esMetrics) AppendDuration() metrics.Timer {
	return newTimer(m.appendDuration)
}

func (m *esMetrics) EventsAppended(count int) {
	m.eventsAppended.Add(float64(count))
}

func (m *esMetrics) ConcurrencyConflict() {
	m.conflictsTotal.Inc()
}

func (m *esMetrics) CommandDuration(command string) metrics.Timer {
	return newTimer(m.commandDuration.WithLabelValues(command))
}

func (m *esMetrics) CommandRetried(command string) {
	m.commandRetries.WithLabelValues(command).Inc()
}

func (m *esMetrics) NotificationSent(eventKind string) {
	m.notifications.WithLabelValues(eventKind).Inc()
}

func (m *esMetrics) ReadModelCacheHit() {
	m.cacheHits.Inc()
}

func (m *esMetrics) ReadModelCacheMiss() {
	m.cacheMisses.Inc()
}

var _ es.Metrics = (*esMetrics)(nil)
