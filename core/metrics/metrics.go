// Package metrics provides abstract metrics interfaces so the command and
// store packages stay decoupled from any concrete instrumentation backend;
// the Prometheus adapter is one implementation.
package metrics

// Counter is a monotonically increasing metric, such as the number of
// appended events or conflict-driven command retries.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()
	// Add increments the counter by delta. delta must be >= 0.
	Add(delta float64)
}

// Gauge is a metric that can go up and down, such as the number of open
// reservations.
type Gauge interface {
	// Set sets the gauge to value.
	Set(value float64)
	// Inc increments the gauge by 1.
	Inc()
	// Dec decrements the gauge by 1.
	Dec()
	// Add adds delta to the gauge. delta can be negative.
	Add(delta float64)
}

// Histogram samples observations, such as fetch and append latencies, and
// counts them in configurable buckets.
type Histogram interface {
	// Observe adds a single observation to the histogram.
	Observe(value float64)
}

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}

// TimerFunc creates a new Timer per command cycle. This allows deferred
// timing patterns like: defer m.CommandDuration(command).ObserveDuration()
type TimerFunc func() Timer
