package worker

import (
	"context"
	"time"

	"github.com/battlesnakeio/duel/rules"
	"github.com/battlesnakeio/duel/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultTickRate is the number of ticks per second.
const DefaultTickRate = 20

// ErrQuit is returned when a player presses quit before the match ends.
var ErrQuit = errors.New("worker: match abandoned")

// Runner will run an individual match to completion.
type Runner struct {
	Config rules.MatchConfig
	// TickRate in ticks per second. Zero selects DefaultTickRate and rate.Inf
	// runs unpaced.
	TickRate rate.Limit

	Names    NameProvider
	Input    InputSource
	Renderer Renderer
	Stats    StatsSink
}

// Run asks for the player names, creates the match and plays it.
func (r *Runner) Run(ctx context.Context) (*rules.MatchResult, error) {
	p1, p2, err := r.Names.PlayerNames(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get player names")
	}
	m, err := rules.NewMatch(r.Config, p1, p2)
	if err != nil {
		return nil, err
	}
	return r.Play(ctx, m)
}

// Play ticks m until it finishes, the context is done or quit is pressed.
// Cancellation is only observed between ticks.
func (r *Runner) Play(ctx context.Context, m *rules.Match) (*rules.MatchResult, error) {
	input := r.Input
	if input == nil {
		input = noInput{}
	}
	renderer := r.Renderer
	if renderer == nil {
		renderer = nopRenderer{}
	}
	tickRate := r.TickRate
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	limiter := rate.NewLimiter(tickRate, 1)

	logger := log.WithField("MatchID", m.ID)
	logger.WithField("TickRate", float64(tickRate)).Info("match started")

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		keys := input.Poll()
		if keys.Pressed(rules.ButtonQuit) {
			logger.WithField("Turn", m.Turn).Info("match abandoned")
			return nil, ErrQuit
		}

		start := time.Now()
		result, err := m.Tick(keys)
		tickDuration.Observe(time.Since(start).Seconds())
		ticks.Inc()
		if err != nil {
			return nil, err
		}
		if result != nil {
			r.finish(ctx, *result, renderer)
			return result, nil
		}

		frame := m.Frame()
		for _, c := range frame.Eaten {
			fruitEaten.WithLabelValues(c.Fruit.Type.String()).Inc()
		}
		if err := renderer.Render(frame); err != nil {
			return nil, errors.Wrap(err, "unable to render frame")
		}
	}
}

// finish records the result and shows it. Persistence is best effort: a
// failing sink never changes the outcome.
func (r *Runner) finish(ctx context.Context, res rules.MatchResult, renderer Renderer) {
	matchesFinished.WithLabelValues(res.Cause).Inc()
	r.record(ctx, res, res.Winner, stats.OutcomeWin, res.WinnerScore)
	r.record(ctx, res, res.Loser, stats.OutcomeLoss, res.LoserScore)

	if err := renderer.RenderResult(res); err != nil {
		log.WithError(err).WithField("MatchID", res.MatchID).Warn("unable to render result")
	}
}

func (r *Runner) record(ctx context.Context, res rules.MatchResult, name string, outcome stats.Outcome, score int) {
	if r.Stats == nil {
		return
	}
	if err := r.Stats.RecordResult(ctx, name, outcome, score); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"MatchID": res.MatchID,
			"Name":    name,
			"Outcome": outcome,
		}).Error("unable to record result")
	}
}
