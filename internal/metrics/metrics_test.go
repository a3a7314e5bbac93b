package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)

	m.ObserveMutation("create", "ok")
	m.ObserveMutation("create", "ok")
	m.ObserveMutation("update", "appointment_not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("update", "appointment_not_found")))
}

func TestObserveView(t *testing.T) {
	m := NewSchedulingMetrics(prometheus.NewRegistry())
	m.ObserveView()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.views))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *SchedulingMetrics
	assert.NotPanics(t, func() {
		m.ObserveMutation("create", "ok")
		m.ObserveView()
	})
}
