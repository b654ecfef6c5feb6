package es

import "github.com/softwerkskammer/Agora-sub003/core/metrics"

// Metrics defines the instrumentation surface of the registration engine.
// Implementations must be thread-safe.
type Metrics interface {
	// Store operations
	FetchDuration() metrics.Timer
	AppendDuration() metrics.Timer
	EventsAppended(count int)
	ConcurrencyConflict()

	// Orchestration
	CommandDuration(command string) metrics.Timer
	CommandRetried(command string)
	NotificationSent(eventKind string)

	// Read model cache
	ReadModelCacheHit()
	ReadModelCacheMiss()
}

// nopMetrics is a no-op implementation of Metrics.
type nopMetrics struct{}

func (nopMetrics) FetchDuration() metrics.Timer  { return metrics.NopTimer() }
func (nopMetrics) AppendDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) EventsAppended(int)            {}
func (nopMetrics) ConcurrencyConflict()          {}

func (nopMetrics) CommandDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) CommandRetried(string)                {}
func (nopMetrics) NotificationSent(string)              {}

func (nopMetrics) ReadModelCacheHit()  {}
func (nopMetrics) ReadModelCacheMiss() {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
