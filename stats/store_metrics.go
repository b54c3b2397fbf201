package stats

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "duel",
			Subsystem: "stats",
			Name:      "calls",
			Help:      "Calls processed by the stats store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) EnsurePlayer(ctx context.Context, name string) error {
	defer instrument("EnsurePlayer")()
	return m.s.EnsurePlayer(ctx, name)
}

func (m *metrics) RecordResult(ctx context.Context, name string, outcome Outcome, scoreDelta int) error {
	defer instrument("RecordResult")()
	return m.s.RecordResult(ctx, name, outcome, scoreDelta)
}

func (m *metrics) GetPlayer(ctx context.Context, name string) (*Record, error) {
	defer instrument("GetPlayer")()
	return m.s.GetPlayer(ctx, name)
}

func (m *metrics) ListPlayers(ctx context.Context) ([]*Record, error) {
	defer instrument("ListPlayers")()
	return m.s.ListPlayers(ctx)
}

// Close closes the wrapped store when it holds resources.
func (m *metrics) Close() error {
	if c, ok := m.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
