// Package sqlstore keeps player records in postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/battlesnakeio/duel/stats"
	_ "github.com/lib/pq" // Import pq driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const migrations = `
CREATE TABLE IF NOT EXISTS players (
	name VARCHAR(255) PRIMARY KEY,
	wins BIGINT NOT NULL DEFAULT 0,
	losses BIGINT NOT NULL DEFAULT 0,
	total_score BIGINT NOT NULL DEFAULT 0,
	created TIMESTAMP DEFAULT now()
);
`

// NewSQLStore returns a new store using a postgres database.
func NewSQLStore(url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to reach database")
	}

	if _, err = db.ExecContext(ctx, migrations); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to migrate")
	}
	return &Store{db: db}, nil
}

// Store represents an SQL store.
type Store struct {
	db *sql.DB
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// transact is a transaction wrapper, helps avoid failed to close connections.
func (s *Store) transact(ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
			panic(p)
		} else if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				log.WithError(rErr).Error("rollback failed")
			}
		} else {
			err = tx.Commit()
		}
	}()
	return txFunc(tx)
}

// EnsurePlayer inserts a zero record unless name already has one.
func (s *Store) EnsurePlayer(ctx context.Context, name string) error {
	if err := stats.ValidateName(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name,
	)
	return errors.Wrap(err, "unable to ensure player")
}

// RecordResult upserts name's record with one more outcome.
func (s *Store) RecordResult(ctx context.Context, name string, outcome stats.Outcome, scoreDelta int) error {
	if err := stats.ValidateResult(name, outcome); err != nil {
		return err
	}
	win, loss := 0, 0
	if outcome == stats.OutcomeWin {
		win = 1
	} else {
		loss = 1
	}
	err := s.transact(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO players (name, wins, losses, total_score) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name)
		DO UPDATE SET
			wins = players.wins + EXCLUDED.wins,
			losses = players.losses + EXCLUDED.losses,
			total_score = players.total_score + EXCLUDED.total_score`,
			name, win, loss, scoreDelta,
		)
		return err
	})
	return errors.Wrap(err, "unable to record result")
}

// GetPlayer returns name's record or stats.ErrNotFound.
func (s *Store) GetPlayer(ctx context.Context, name string) (*stats.Record, error) {
	r := &stats.Record{Name: name}
	row := s.db.QueryRowContext(ctx,
		`SELECT wins, losses, total_score FROM players WHERE name=$1`, name)
	if err := row.Scan(&r.Wins, &r.Losses, &r.TotalScore); err != nil {
		if err == sql.ErrNoRows {
			return nil, stats.ErrNotFound
		}
		return nil, errors.Wrap(err, "unable to get player")
	}
	return r, nil
}

// ListPlayers returns every record, most wins first.
func (s *Store) ListPlayers(ctx context.Context) ([]*stats.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, wins, losses, total_score FROM players ORDER BY wins DESC, name ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list players")
	}
	defer rows.Close()

	records := []*stats.Record{}
	for rows.Next() {
		r := &stats.Record{}
		if err := rows.Scan(&r.Name, &r.Wins, &r.Losses, &r.TotalScore); err != nil {
			return nil, errors.Wrap(err, "unable to scan player")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to list players")
	}
	// Collation may differ from Go's byte order.
	stats.SortRecords(records)
	return records, nil
}
