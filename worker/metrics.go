package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "duel",
			Subsystem: "match",
			Name:      "ticks_total",
			Help:      "Ticks simulated.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "duel",
			Subsystem: "match",
			Name:      "tick_seconds",
			Help:      "Time spent simulating a tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	fruitEaten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duel",
			Subsystem: "match",
			Name:      "fruit_eaten_total",
			Help:      "Fruit eaten, by fruit type.",
		},
		[]string{"type"},
	)
	matchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duel",
			Subsystem: "match",
			Name:      "finished_total",
			Help:      "Matches finished, by how the loser died.",
		},
		[]string{"cause"},
	)
)

func init() {
	prometheus.MustRegister(ticks, tickDuration, fruitEaten, matchesFinished)
}
