package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters and histograms for the scheduling flows.
// A nil *BookingMetrics is valid and records nothing.
type BookingMetrics struct {
	bookingsTotal   *prometheus.CounterVec
	batchItemsTotal *prometheus.CounterVec
	sideEffectFails *prometheus.CounterVec
	slotGeneration  *prometheus.HistogramVec
	slotCacheTotal  *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Single booking attempts by outcome",
		}, []string{"outcome"}),
		batchItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "batch_items_total",
			Help:      "Basket checkout items by outcome",
		}, []string{"outcome"}),
		sideEffectFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "side_effect_failures_total",
			Help:      "Post-commit enrichment failures by kind",
		}, []string{"kind"}),
		slotGeneration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "availability",
			Name:      "slot_generation_seconds",
			Help:      "Latency of building a monthly slot grid",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		slotCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "availability",
			Name:      "slot_cache_total",
			Help:      "Slot cache lookups by result",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.batchItemsTotal, m.sideEffectFails, m.slotGeneration, m.slotCacheTotal)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveBatchItem(outcome string) {
	if m == nil {
		return
	}
	m.batchItemsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSideEffectFailure(kind string) {
	if m == nil {
		return
	}
	m.sideEffectFails.WithLabelValues(kind).Inc()
}

func (m *BookingMetrics) ObserveSlotGeneration(source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.slotGeneration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (m *BookingMetrics) ObserveSlotCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.slotCacheTotal.WithLabelValues(result).Inc()
}
