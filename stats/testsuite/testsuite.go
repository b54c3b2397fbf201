// Package testsuite is the conformance suite every stats backend runs.
package testsuite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/battlesnakeio/duel/stats"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
)

func name(prefix string) string {
	return prefix + "-" + uuid.NewV4().String()
}

func testStoreUnknownPlayer(t *testing.T, s stats.Store) {
	ctx := context.Background()

	_, err := s.GetPlayer(ctx, name("missing"))
	require.Equal(t, stats.ErrNotFound, errors.Cause(err))
}

func testStoreEnsurePlayer(t *testing.T, s stats.Store) {
	ctx := context.Background()
	key := name("ensure")

	require.NoError(t, s.EnsurePlayer(ctx, key))
	r, err := s.GetPlayer(ctx, key)
	require.NoError(t, err)
	require.Equal(t, &stats.Record{Name: key}, r)

	// Existing records are left alone.
	require.NoError(t, s.RecordResult(ctx, key, stats.OutcomeWin, 4))
	require.NoError(t, s.EnsurePlayer(ctx, key))
	r, err = s.GetPlayer(ctx, key)
	require.NoError(t, err)
	require.Equal(t, &stats.Record{Name: key, Wins: 1, TotalScore: 4}, r)
}

func testStoreRecordResult(t *testing.T, s stats.Store) {
	ctx := context.Background()
	key := name("record")

	// Unknown names start from zero.
	require.NoError(t, s.RecordResult(ctx, key, stats.OutcomeLoss, 3))
	r, err := s.GetPlayer(ctx, key)
	require.NoError(t, err)
	require.Equal(t, &stats.Record{Name: key, Losses: 1, TotalScore: 3}, r)

	require.NoError(t, s.RecordResult(ctx, key, stats.OutcomeWin, 10))
	require.NoError(t, s.RecordResult(ctx, key, stats.OutcomeWin, 0))
	r, err = s.GetPlayer(ctx, key)
	require.NoError(t, err)
	require.Equal(t, &stats.Record{Name: key, Wins: 2, Losses: 1, TotalScore: 13}, r)
}

func testStoreRejectsBadInput(t *testing.T, s stats.Store) {
	ctx := context.Background()

	err := s.RecordResult(ctx, name("bad"), stats.Outcome("draw"), 1)
	require.Equal(t, stats.ErrInvalidOutcome, errors.Cause(err))

	err = s.RecordResult(ctx, " ", stats.OutcomeWin, 1)
	require.Equal(t, stats.ErrInvalidName, errors.Cause(err))

	err = s.EnsurePlayer(ctx, "")
	require.Equal(t, stats.ErrInvalidName, errors.Cause(err))
}

func testStoreListPlayers(t *testing.T, s stats.Store) {
	ctx := context.Background()

	require.NoError(t, s.RecordResult(ctx, "carol", stats.OutcomeWin, 5))
	require.NoError(t, s.RecordResult(ctx, "alice", stats.OutcomeWin, 2))
	require.NoError(t, s.RecordResult(ctx, "alice", stats.OutcomeWin, 2))
	require.NoError(t, s.RecordResult(ctx, "bob", stats.OutcomeWin, 1))
	require.NoError(t, s.RecordResult(ctx, "dave", stats.OutcomeLoss, 9))
	require.NoError(t, s.EnsurePlayer(ctx, "erin"))

	records, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	names := []string{}
	for _, r := range records {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, names)
	require.Equal(t, int64(2), records[0].Wins)
	require.Equal(t, int64(4), records[0].TotalScore)
	require.Equal(t, int64(1), records[3].Losses)
}

func testStoreConcurrentWriters(t *testing.T, s stats.Store) {
	ctx := context.Background()
	key := name("concurrent")

	var wg sync.WaitGroup
	wg.Add(20)
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer wg.Done()
			outcome := stats.OutcomeWin
			if i%2 == 1 {
				outcome = stats.OutcomeLoss
			}
			errs <- s.RecordResult(ctx, key, outcome, 1)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	r, err := s.GetPlayer(ctx, key)
	require.NoError(t, err)
	require.Equal(t, int64(10), r.Wins)
	require.Equal(t, int64(10), r.Losses)
	require.Equal(t, int64(20), r.TotalScore)
}

// Suite runs every store test against s, calling reset before each one.
// ListPlayers needs reset to leave the store empty.
func Suite(t *testing.T, s stats.Store, reset func()) {
	tests := []func(t *testing.T, s stats.Store){
		testStoreUnknownPlayer,
		testStoreEnsurePlayer,
		testStoreRecordResult,
		testStoreRejectsBadInput,
		testStoreListPlayers,
		testStoreConcurrentWriters,
	}
	for i, test := range tests {
		reset()
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) { test(t, s) })
	}
}
