package worker

import (
	"context"
	"testing"

	"github.com/battlesnakeio/duel/rules"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStaticNames(t *testing.T) {
	p1, p2, err := StaticNames{Player1: "ann", Player2: "ben"}.PlayerNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ann", p1)
	require.Equal(t, "ben", p2)
}

func TestMultiRenderer(t *testing.T) {
	first := &recordingRenderer{err: errors.New("first")}
	second := &recordingRenderer{err: errors.New("second")}
	ok := &recordingRenderer{}
	m := MultiRenderer{ok, first, second}

	err := m.Render(&rules.Frame{Turn: 4})
	require.EqualError(t, err, "first")
	err = m.RenderResult(rules.MatchResult{Winner: "ann"})
	require.EqualError(t, err, "first")

	for _, r := range []*recordingRenderer{ok, first, second} {
		require.Len(t, r.frames, 1)
		require.Len(t, r.results, 1)
	}

	require.NoError(t, MultiRenderer{ok}.Render(&rules.Frame{}))
	require.NoError(t, MultiRenderer(nil).RenderResult(rules.MatchResult{}))
}
