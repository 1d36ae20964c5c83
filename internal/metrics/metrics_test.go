package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestBookingMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking("created")
	m.ObserveBooking("created")
	m.ObserveBooking("conflict")
	m.ObserveSlotCache(true)
	m.ObserveSlotGeneration("generated", 5*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "scheduler_appointments_bookings_total", "outcome", "created"))
	assert.Equal(t, 1.0, counterValue(t, reg, "scheduler_appointments_bookings_total", "outcome", "conflict"))
	assert.Equal(t, 1.0, counterValue(t, reg, "scheduler_availability_slot_cache_total", "result", "hit"))
}

func TestBookingMetrics_NilSafe(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveBooking("created")
		m.ObserveBatchItem("failed")
		m.ObserveSideEffectFailure("video")
		m.ObserveSlotGeneration("cache", time.Millisecond)
		m.ObserveSlotCache(false)
	})
}
