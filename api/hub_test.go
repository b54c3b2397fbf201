package api

import (
	"testing"

	"github.com/battlesnakeio/duel/rules"
	"github.com/stretchr/testify/require"
)

func TestHubLatestAndResult(t *testing.T) {
	h := NewHub()
	_, ok := h.Latest()
	require.False(t, ok)

	require.NoError(t, h.Render(&rules.Frame{MatchID: "a", Turn: 1}))
	require.NoError(t, h.Render(&rules.Frame{MatchID: "a", Turn: 2}))
	frame, ok := h.Latest()
	require.True(t, ok)
	require.Equal(t, int64(2), frame.Turn)

	require.NoError(t, h.RenderResult(rules.MatchResult{MatchID: "a", Winner: "ann"}))
	result, ok := h.Result()
	require.True(t, ok)
	require.Equal(t, "ann", result.Winner)

	// A new match clears the old result.
	require.NoError(t, h.Render(&rules.Frame{MatchID: "b", Turn: 1}))
	_, ok = h.Result()
	require.False(t, ok)

	require.Error(t, h.Render(nil))
}

func TestHubSubscribeReplaysState(t *testing.T) {
	h := NewHub()
	require.NoError(t, h.Render(&rules.Frame{MatchID: "a", Turn: 3}))
	require.NoError(t, h.RenderResult(rules.MatchResult{MatchID: "a", Winner: "ben"}))

	s := h.subscribe()
	require.Equal(t, 1, h.Subscribers())
	m := <-s.send
	require.Equal(t, MessageFrame, m.Type)
	require.Equal(t, int64(3), m.Frame.Turn)
	m = <-s.send
	require.Equal(t, MessageResult, m.Type)
	require.Equal(t, "ben", m.Result.Winner)

	h.unsubscribe(s)
	require.Equal(t, 0, h.Subscribers())
	_, ok := <-s.send
	require.False(t, ok)
	// Unsubscribing twice is harmless.
	h.unsubscribe(s)
}

func TestHubDropsForSlowSubscribers(t *testing.T) {
	h := NewHub()
	s := h.subscribe()
	for i := 0; i < subscriberBuffer+10; i++ {
		require.NoError(t, h.Render(&rules.Frame{MatchID: "a", Turn: int64(i + 1)}))
	}
	require.Len(t, s.send, subscriberBuffer)

	// The result is never dropped.
	require.NoError(t, h.RenderResult(rules.MatchResult{MatchID: "a", Winner: "ann"}))
	require.Len(t, s.send, subscriberBuffer)
	require.Equal(t, int64(2), (<-s.send).Frame.Turn)
	var last Message
	for len(s.send) > 0 {
		last = <-s.send
	}
	require.Equal(t, MessageResult, last.Type)
}

func TestHubClose(t *testing.T) {
	h := NewHub()
	s := h.subscribe()
	h.Close()

	_, ok := <-s.send
	require.False(t, ok)
	require.Nil(t, h.subscribe())
	h.unsubscribe(s)
}
