// Package stats keeps per-player win/loss records. Matches report into it
// through RecordResult; the leaderboard reads it back.
package stats

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a player has no record.
	ErrNotFound = errors.New("stats: player not found")
	// ErrInvalidName is returned for blank player names.
	ErrInvalidName = errors.New("stats: invalid player name")
	// ErrInvalidOutcome is returned for outcomes other than win or loss.
	ErrInvalidOutcome = errors.New("stats: invalid outcome")
)

// Outcome is how a match ended for one player.
type Outcome string

const (
	// OutcomeWin is recorded for the surviving snake.
	OutcomeWin Outcome = "win"
	// OutcomeLoss is recorded for the snake that died.
	OutcomeLoss Outcome = "loss"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// Record is one player's lifetime stats.
type Record struct {
	Name       string `json:"name"`
	Wins       int64  `json:"wins"`
	Losses     int64  `json:"losses"`
	TotalScore int64  `json:"totalScore"`
}

// Apply adds one match outcome to the record.
func (r *Record) Apply(outcome Outcome, scoreDelta int) {
	switch outcome {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	}
	r.TotalScore += int64(scoreDelta)
}

// Store is the interface to the backend store. Names a store has not seen
// before are fresh zero records.
type Store interface {
	// EnsurePlayer creates a zero record for name if none exists.
	EnsurePlayer(ctx context.Context, name string) error
	// RecordResult adds one match outcome and its score to name's record.
	RecordResult(ctx context.Context, name string, outcome Outcome, scoreDelta int) error
	// GetPlayer returns name's record or ErrNotFound.
	GetPlayer(ctx context.Context, name string) (*Record, error)
	// ListPlayers returns every record, most wins first.
	ListPlayers(ctx context.Context) ([]*Record, error)
}

// SortRecords orders records by wins descending, then by name.
func SortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Wins != records[j].Wins {
			return records[i].Wins > records[j].Wins
		}
		return records[i].Name < records[j].Name
	})
}

// ValidateName rejects blank names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

// ValidateResult checks the arguments of RecordResult.
func ValidateResult(name string, outcome Outcome) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if !outcome.Valid() {
		return errors.Wrapf(ErrInvalidOutcome, "%q", outcome)
	}
	return nil
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		players: map[string]*Record{},
	}
}

type inmem struct {
	players map[string]*Record
	lock    sync.Mutex
}

func (in *inmem) EnsurePlayer(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	in.lock.Lock()
	defer in.lock.Unlock()

	in.require(name)
	return nil
}

func (in *inmem) require(name string) *Record {
	r, ok := in.players[name]
	if !ok {
		r = &Record{Name: name}
		in.players[name] = r
	}
	return r
}

func (in *inmem) RecordResult(ctx context.Context, name string, outcome Outcome, scoreDelta int) error {
	if err := ValidateResult(name, outcome); err != nil {
		return err
	}
	in.lock.Lock()
	defer in.lock.Unlock()

	in.require(name).Apply(outcome, scoreDelta)
	return nil
}

func (in *inmem) GetPlayer(ctx context.Context, name string) (*Record, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if r, ok := in.players[name]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (in *inmem) ListPlayers(ctx context.Context) ([]*Record, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	records := make([]*Record, 0, len(in.players))
	for _, r := range in.players {
		clone := *r
		records = append(records, &clone)
	}
	SortRecords(records)
	return records, nil
}
