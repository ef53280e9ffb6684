// Package metrics provides Prometheus metrics for flashcard generation.
//
// Label values are limited to outcome categories; video IDs and trace IDs are
// never used as labels.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess is the outcome label of a generation that returned cards.
const OutcomeSuccess = "success"

// Metrics holds the generation collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// GenerationsTotal counts finished generations by outcome (success or a
	// failure category label).
	GenerationsTotal *prometheus.CounterVec

	// CardsGeneratedTotal counts cards returned to callers.
	CardsGeneratedTotal prometheus.Counter

	// CardsDroppedTotal counts upstream card entries rejected by validation.
	CardsDroppedTotal prometheus.Counter

	// UpstreamDuration observes the latency of upstream model calls.
	UpstreamDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GenerationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vidcards_generations_total",
			Help: "Total number of flashcard generation requests, by outcome.",
		}, []string{"outcome"}),

		CardsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "vidcards_cards_generated_total",
			Help: "Total number of study cards returned to callers.",
		}),

		CardsDroppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "vidcards_cards_dropped_total",
			Help: "Total number of upstream card entries discarded by validation.",
		}),

		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vidcards_upstream_request_duration_seconds",
			Help:    "Latency of upstream content generation calls, by result.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60, 90},
		}, []string{"result"}),
	}
}

// ObserveOutcome records a finished generation.
func (m *Metrics) ObserveOutcome(outcome string, cards, dropped int) {
	if m == nil {
		return
	}

	m.GenerationsTotal.WithLabelValues(outcome).Inc()
	if cards > 0 {
		m.CardsGeneratedTotal.Add(float64(cards))
	}
	if dropped > 0 {
		m.CardsDroppedTotal.Add(float64(dropped))
	}
}

// ObserveUpstream records the duration of one upstream call.
func (m *Metrics) ObserveUpstream(elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	m.UpstreamDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}
