// Package worker provides the actual running of matches. It drives the rules
// at a fixed tick rate and talks to the collaborators around a match: where
// names come from, where input comes from, where frames are drawn and where
// results are recorded.
package worker

import (
	"context"

	"github.com/battlesnakeio/duel/rules"
	"github.com/battlesnakeio/duel/stats"
)

// NameProvider supplies the two player names before a match starts.
type NameProvider interface {
	PlayerNames(ctx context.Context) (player1, player2 string, err error)
}

// StatsSink receives one call per player when a match finishes. Every
// stats.Store satisfies it.
type StatsSink interface {
	RecordResult(ctx context.Context, name string, outcome stats.Outcome, scoreDelta int) error
}

// Renderer draws a frame every tick and the result once the match ends.
type Renderer interface {
	Render(frame *rules.Frame) error
	RenderResult(result rules.MatchResult) error
}

// InputSource is polled once per tick for the held buttons.
type InputSource interface {
	Poll() rules.KeyState
}

// StaticNames is a NameProvider with fixed names.
type StaticNames struct {
	Player1 string
	Player2 string
}

// PlayerNames returns the fixed names.
func (n StaticNames) PlayerNames(context.Context) (string, string, error) {
	return n.Player1, n.Player2, nil
}

// MultiRenderer fans frames out to several renderers. Every renderer is
// called even when an earlier one fails; the first error is returned.
type MultiRenderer []Renderer

// Render draws the frame on every renderer.
func (m MultiRenderer) Render(frame *rules.Frame) error {
	var first error
	for _, r := range m {
		if err := r.Render(frame); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RenderResult draws the result on every renderer.
func (m MultiRenderer) RenderResult(result rules.MatchResult) error {
	var first error
	for _, r := range m {
		if err := r.RenderResult(result); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type nopRenderer struct{}

func (nopRenderer) Render(*rules.Frame) error             { return nil }
func (nopRenderer) RenderResult(rules.MatchResult) error { return nil }

type noInput struct{}

func (noInput) Poll() rules.KeyState { return rules.KeyState{} }
