// Package redisstore keeps player records in redis. Each player is a hash at
// player:<name> holding wins, losses and total_score; the set players indexes
// every name seen.
package redisstore

import (
	"context"
	"strconv"

	"github.com/battlesnakeio/duel/stats"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const (
	playersKey = "players"

	fieldWins       = "wins"
	fieldLosses     = "losses"
	fieldTotalScore = "total_score"
)

func playerKey(name string) string { return "player:" + name }

// Store is a redis backed stats.Store.
type Store struct {
	client *redis.Client
}

// NewStore will create a new instance of an underlying redis client, so it
// should not be re-created across goroutines. See go-redis ParseURL for the
// URL format. The connection is checked immediately.
func NewStore(connectURL string) (*Store, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	if err := client.Ping().Err(); err != nil {
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &Store{client: client}, nil
}

// Close closes the redis client.
func (rs *Store) Close() error {
	return rs.client.Close()
}

// EnsurePlayer creates a zero record for name if none exists. Incrementing
// by zero leaves existing fields alone.
func (rs *Store) EnsurePlayer(ctx context.Context, name string) error {
	if err := stats.ValidateName(name); err != nil {
		return err
	}
	key := playerKey(name)
	_, err := rs.client.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.SAdd(playersKey, name)
		pipe.HIncrBy(key, fieldWins, 0)
		pipe.HIncrBy(key, fieldLosses, 0)
		pipe.HIncrBy(key, fieldTotalScore, 0)
		return nil
	})
	return errors.Wrap(err, "unable to ensure player")
}

// RecordResult adds one outcome to name's record in a single transaction.
func (rs *Store) RecordResult(ctx context.Context, name string, outcome stats.Outcome, scoreDelta int) error {
	if err := stats.ValidateResult(name, outcome); err != nil {
		return err
	}
	win, loss := int64(0), int64(0)
	if outcome == stats.OutcomeWin {
		win = 1
	} else {
		loss = 1
	}
	key := playerKey(name)
	_, err := rs.client.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.SAdd(playersKey, name)
		pipe.HIncrBy(key, fieldWins, win)
		pipe.HIncrBy(key, fieldLosses, loss)
		pipe.HIncrBy(key, fieldTotalScore, int64(scoreDelta))
		return nil
	})
	return errors.Wrap(err, "unable to record result")
}

// GetPlayer returns name's record or stats.ErrNotFound.
func (rs *Store) GetPlayer(ctx context.Context, name string) (*stats.Record, error) {
	fields, err := rs.client.WithContext(ctx).HGetAll(playerKey(name)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get player")
	}
	if len(fields) == 0 {
		return nil, stats.ErrNotFound
	}
	return decodeRecord(name, fields)
}

// ListPlayers reads every indexed player in one pipeline.
func (rs *Store) ListPlayers(ctx context.Context) ([]*stats.Record, error) {
	client := rs.client.WithContext(ctx)
	names, err := client.SMembers(playersKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "unable to list players")
	}
	if len(names) == 0 {
		return []*stats.Record{}, nil
	}

	cmds := make([]*redis.StringStringMapCmd, len(names))
	_, err = client.Pipelined(func(pipe redis.Pipeliner) error {
		for i, name := range names {
			cmds[i] = pipe.HGetAll(playerKey(name))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to read players")
	}

	records := make([]*stats.Record, 0, len(names))
	for i, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil {
			return nil, errors.Wrap(err, "unable to read player")
		}
		if len(fields) == 0 {
			continue
		}
		r, err := decodeRecord(names[i], fields)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	stats.SortRecords(records)
	return records, nil
}

func decodeRecord(name string, fields map[string]string) (*stats.Record, error) {
	r := &stats.Record{Name: name}
	for field, dst := range map[string]*int64{
		fieldWins:       &r.Wins,
		fieldLosses:     &r.Losses,
		fieldTotalScore: &r.TotalScore,
	} {
		v, ok := fields[field]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s for %q", field, name)
		}
		*dst = n
	}
	return r, nil
}
