package metrics

// The nop implementations below back the default wiring: a service built
// without an instrumentation backend records nothing.

type nopCounter struct{}

func (nopCounter) Inc()        {}
func (nopCounter) Add(float64) {}

type nopGauge struct{}

func (nopGauge) Set(float64) {}
func (nopGauge) Inc()        {}
func (nopGauge) Dec()        {}
func (nopGauge) Add(float64) {}

type nopHistogram struct{}

func (nopHistogram) Observe(float64) {}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopCounter returns a Counter that discards every increment.
func NopCounter() Counter { return nopCounter{} }

// NopGauge returns a Gauge that discards every update.
func NopGauge() Gauge { return nopGauge{} }

// NopHistogram returns a Histogram that discards every observation.
func NopHistogram() Histogram { return nopHistogram{} }

// NopTimer returns a Timer that records nothing.
func NopTimer() Timer { return nopTimer{} }

// NopTimerFunc returns a TimerFunc that always returns a no-op Timer.
func NopTimerFunc() TimerFunc { return func() Timer { return nopTimer{} } }
