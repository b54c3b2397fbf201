package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/battlesnakeio/duel/api"
	"github.com/battlesnakeio/duel/rules"
	"github.com/battlesnakeio/duel/stats"
	"github.com/battlesnakeio/duel/worker"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	matches    = 5
	matchLimit = 20 * time.Second
)

func newClient(url string) *client {
	return &client{
		apiURL: url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

var boards = map[string]rules.Grid{
	"Small":  {Width: 50, Height: 50, BlockSize: 10},
	"Narrow": {Width: 100, Height: 30, BlockSize: 10},
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func Test(t *testing.T) {
	if testing.Short() {
		t.Skip("plays full matches")
	}

	store := stats.InstrumentStore(stats.InMemStore())
	hub := api.NewHub()
	ts := httptest.NewServer(api.New("", store, hub).Handler())
	defer ts.Close()
	defer hub.Close()
	c := newClient(ts.URL)

	played := 0
	var previous string
	for i := 0; i < matches; i++ {
		for name, grid := range boards {
			// Subtests share the hub, so they run one at a time.
			t.Run(fmt.Sprintf("%s#%d", name, i), func(t *testing.T) {
				ctx, cancel := context.WithTimeout(context.Background(), matchLimit)
				defer cancel()

				waitFor(t, func() bool { return hub.Subscribers() == 0 })
				s, err := c.follow(ctx)
				require.NoError(t, err)
				defer s.Close()
				waitFor(t, func() bool { return hub.Subscribers() == 1 })

				runner := &worker.Runner{
					Config: rules.MatchConfig{
						Grid:       grid,
						FruitCount: 2,
						Clock:      rules.SystemClock{},
						Rand:       rules.NewRand(),
					},
					TickRate: rate.Limit(1000),
					Names:    worker.StaticNames{Player1: "ann", Player2: "bob"},
					Input:    newRandomInput(),
					Renderer: hub,
					Stats:    store,
				}
				type outcome struct {
					res *rules.MatchResult
					err error
				}
				done := make(chan outcome, 1)
				go func() {
					res, err := runner.Run(ctx)
					done <- outcome{res, err}
				}()

				var frames []*rules.Frame
				var streamed *rules.MatchResult
				for streamed == nil {
					m, err := s.next()
					require.NoError(t, err)
					switch m.Type {
					case api.MessageFrame:
						if m.Frame.MatchID == previous {
							continue
						}
						frames = append(frames, m.Frame)
					case api.MessageResult:
						if m.Result.MatchID == previous {
							continue
						}
						streamed = m.Result
					}
				}

				out := <-done
				require.NoError(t, out.err)
				require.Equal(t, *out.res, *streamed)
				previous = out.res.MatchID
				played++
				t.Logf("match finished id=%s turns=%d frames=%d cause=%s",
					out.res.MatchID, out.res.Turn, len(frames), out.res.Cause)

				last := int64(0)
				for _, f := range frames {
					if !assert.Equal(t, out.res.MatchID, f.MatchID) || !assert.True(t, f.Turn > last) {
						spew.Dump(frames)
						return
					}
					last = f.Turn
				}
				assert.True(t, out.res.Turn > last)
				assert.NotEqual(t, out.res.Winner, out.res.Loser)

				if len(frames) > 0 {
					latest, err := c.latestFrame()
					require.NoError(t, err)
					assert.Equal(t, out.res.MatchID, latest.MatchID)
				}

				winner, err := c.player(out.res.Winner)
				require.NoError(t, err)
				assert.True(t, winner.Wins > 0)
			})
		}
	}

	records, err := c.players()
	require.NoError(t, err)
	require.Len(t, records, 2)
	var wins, losses int64
	for _, r := range records {
		assert.Equal(t, int64(played), r.Wins+r.Losses, "%s", r.Name)
		wins += r.Wins
		losses += r.Losses
	}
	assert.Equal(t, int64(played), wins)
	assert.Equal(t, int64(played), losses)
}
