// Package metrics exposes prometheus collectors for the serve surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors of the divination API.
type Metrics struct {
	Casts   *prometheus.CounterVec
	Changes prometheus.Counter
}

// New registers the divination collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Casts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cliching_casts_total",
				Help: "Hexagrams cast, by King Wen number.",
			},
			[]string{"hexagram"},
		),
		Changes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cliching_changes_total",
				Help: "Changing hexagrams derived.",
			},
		),
	}

	reg.MustRegister(m.Casts, m.Changes)
	return m
}
