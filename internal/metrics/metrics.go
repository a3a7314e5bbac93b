package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics counts appointment mutations and calendar renders.
type SchedulingMetrics struct {
	mutations *prometheus.CounterVec
	views     prometheus.Counter
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "care",
			Subsystem: "scheduling",
			Name:      "appointment_mutations_total",
			Help:      "Appointment mutations by operation and outcome",
		}, []string{"operation", "outcome"}),
		views: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "care",
			Subsystem: "scheduling",
			Name:      "calendar_views_total",
			Help:      "Month views rendered",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.mutations, m.views)
	return m
}

// ObserveMutation records op with outcome "ok" or a business error code.
func (m *SchedulingMetrics) ObserveMutation(op, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, outcome).Inc()
}

func (m *SchedulingMetrics) ObserveView() {
	if m == nil {
		return
	}
	m.views.Inc()
}
