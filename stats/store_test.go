package stats_test

import (
	"context"
	"testing"

	"github.com/battlesnakeio/duel/stats"
	"github.com/battlesnakeio/duel/stats/testsuite"
	"github.com/stretchr/testify/require"
)

// fresh swaps in a new backing store on every reset.
type fresh struct{ stats.Store }

func TestInMemStore(t *testing.T) {
	s := &fresh{}
	testsuite.Suite(t, s, func() { s.Store = stats.InMemStore() })
}

func TestInstrumentedStore(t *testing.T) {
	s := &fresh{}
	testsuite.Suite(t, s, func() { s.Store = stats.InstrumentStore(stats.InMemStore()) })
}

func TestSortRecords(t *testing.T) {
	records := []*stats.Record{
		{Name: "b", Wins: 1},
		{Name: "c", Wins: 3},
		{Name: "a", Wins: 1},
	}
	stats.SortRecords(records)
	require.Equal(t, "c", records[0].Name)
	require.Equal(t, "a", records[1].Name)
	require.Equal(t, "b", records[2].Name)
}

func TestInMemStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := stats.InMemStore()
	require.NoError(t, s.RecordResult(ctx, "alice", stats.OutcomeWin, 3))

	r, err := s.GetPlayer(ctx, "alice")
	require.NoError(t, err)
	r.Wins = 100

	r, err = s.GetPlayer(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), r.Wins)
}
