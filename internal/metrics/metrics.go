// Package metrics counts selection transitions and persistence outcomes on a
// private prometheus registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	Registry      *prometheus.Registry
	Transitions   *prometheus.CounterVec
	PersistWrites *prometheus.CounterVec
	PersistLoads  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "placefilter",
			Name:      "transitions_total",
			Help:      "Selection transitions by operation and result.",
		}, []string{"op", "result"}),
		PersistWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "placefilter",
			Name:      "persist_writes_total",
			Help:      "Background selection writes by result.",
		}, []string{"result"}),
		PersistLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "placefilter",
			Name:      "persist_loads_total",
			Help:      "Startup selection loads by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Transitions, m.PersistWrites, m.PersistLoads)
	return m
}

func (m *Metrics) Transition(op, result string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Write(result string) {
	if m == nil {
		return
	}
	m.PersistWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) Load(outcome string) {
	if m == nil {
		return
	}
	m.PersistLoads.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps the registry in exposition format, for node_exporter's
// textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
