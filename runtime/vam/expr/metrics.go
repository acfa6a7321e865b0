package expr

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts evaluated batches.  A nil *Metrics counts nothing.
type Metrics struct {
	batches  *prometheus.CounterVec
	nullable prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cond",
			Subsystem: "multiif",
			Name:      "batches_total",
			Help:      "Number of batches evaluated, by evaluator.",
		}, []string{"path"}),
		nullable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cond",
			Subsystem: "multiif",
			Name:      "nullable_batches_total",
			Help:      "Number of batches evaluated with null tracking.",
		}),
	}
	reg.MustRegister(m.batches, m.nullable)
	return m
}

func (m *Metrics) observe(path string, nullable bool) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(path).Inc()
	if nullable {
		m.nullable.Inc()
	}
}
