package correlate

import "github.com/prometheus/client_golang/prometheus"

// Observer is notified of every resolution outcome. Implementations must be
// safe for concurrent use and must not block.
type Observer interface {
	ObserveResolution(Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Outcome)

// ObserveResolution calls f(o).
func (f ObserverFunc) ObserveResolution(o Outcome) { f(o) }

// PrometheusObserver counts resolutions by outcome.
type PrometheusObserver struct {
	resolutions *prometheus.CounterVec
}

// NewPrometheusObserver registers the correlation_resolutions_total counter
// with reg. A nil reg leaves the collector unregistered.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "correlation_resolutions_total",
		Help: "Correlation id resolutions by outcome.",
	}, []string{"outcome"})

	// Pre-create every series so dashboards see zeros instead of gaps.
	for _, o := range Outcomes {
		resolutions.WithLabelValues(o.String())
	}

	if reg != nil {
		if err := reg.Register(resolutions); err != nil {
			return nil, err
		}
	}
	return &PrometheusObserver{resolutions: resolutions}, nil
}

// ObserveResolution increments the counter for o.
func (p *PrometheusObserver) ObserveResolution(o Outcome) {
	p.resolutions.WithLabelValues(o.String()).Inc()
}
