// Package filestore keeps player records in an append-only journal of JSON
// lines. The journal is replayed into memory when the store opens.
package filestore

import (
	"context"
	"os/user"
	"path"
	"sync"

	"github.com/battlesnakeio/duel/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultPath is where the journal lives when no path is given.
func DefaultPath() string {
	return path.Join(homeDir(), ".duel", "stats.jsonl")
}

func homeDir() string {
	usr, err := user.Current()
	if err != nil {
		return "."
	}
	return usr.HomeDir
}

// entry is one journal line. An empty outcome only registers the name.
type entry struct {
	Name    string        `json:"name"`
	Outcome stats.Outcome `json:"outcome,omitempty"`
	Score   int           `json:"score,omitempty"`
}

// Store is a journal backed stats.Store.
type Store struct {
	path    string
	players stats.Store
	w       writer
	lock    sync.Mutex
}

// NewFileStore replays the journal at filePath, creating it if needed, and
// keeps it open for appends.
func NewFileStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = DefaultPath()
	}
	players := stats.InMemStore()

	entries, err := readJournal(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", filePath)
	}
	ctx := context.Background()
	for i, e := range entries {
		if err := apply(ctx, players, e); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"Path": filePath,
				"Line": i + 1,
			}).Warn("skipping bad journal entry")
		}
	}

	w, err := openFileWriter(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", filePath)
	}
	log.WithFields(log.Fields{
		"Path":    filePath,
		"Entries": len(entries),
	}).Debug("stats journal loaded")
	return &Store{path: filePath, players: players, w: w}, nil
}

func apply(ctx context.Context, players stats.Store, e entry) error {
	if e.Outcome == "" {
		return players.EnsurePlayer(ctx, e.Name)
	}
	return players.RecordResult(ctx, e.Name, e.Outcome, e.Score)
}

// append writes e to the journal and then applies it in memory, so memory
// never holds an entry the journal lost.
func (fs *Store) append(ctx context.Context, e entry) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := writeLine(fs.w, e); err != nil {
		return errors.Wrap(err, "unable to write journal")
	}
	return apply(ctx, fs.players, e)
}

// EnsurePlayer journals name unless it already has a record.
func (fs *Store) EnsurePlayer(ctx context.Context, name string) error {
	if err := stats.ValidateName(name); err != nil {
		return err
	}
	if _, err := fs.players.GetPlayer(ctx, name); err == nil {
		return nil
	}
	return fs.append(ctx, entry{Name: name})
}

// RecordResult journals one outcome for name.
func (fs *Store) RecordResult(ctx context.Context, name string, outcome stats.Outcome, scoreDelta int) error {
	if err := stats.ValidateResult(name, outcome); err != nil {
		return err
	}
	return fs.append(ctx, entry{Name: name, Outcome: outcome, Score: scoreDelta})
}

// GetPlayer returns name's record or stats.ErrNotFound.
func (fs *Store) GetPlayer(ctx context.Context, name string) (*stats.Record, error) {
	return fs.players.GetPlayer(ctx, name)
}

// ListPlayers returns every record, most wins first.
func (fs *Store) ListPlayers(ctx context.Context) ([]*stats.Record, error) {
	return fs.players.ListPlayers(ctx)
}

// Close closes the journal.
func (fs *Store) Close() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.w.Close()
}
