package commands

import (
	"io"

	"github.com/battlesnakeio/duel/config"
	"github.com/battlesnakeio/duel/stats"
	"github.com/battlesnakeio/duel/stats/filestore"
	"github.com/battlesnakeio/duel/stats/redisstore"
	"github.com/battlesnakeio/duel/stats/sqlstore"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// openStore opens the named stats backend, instrumented.
func openStore(backend, args string) (stats.Store, error) {
	var store stats.Store
	var err error
	switch backend {
	case config.BackendInMem:
		store = stats.InMemStore()
	case config.BackendFile:
		store, err = filestore.NewFileStore(args)
	case config.BackendRedis:
		store, err = redisstore.NewStore(args)
	case config.BackendSQL:
		store, err = sqlstore.NewSQLStore(args)
	default:
		return nil, errors.Errorf("invalid backend %q", backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to start up %s stats store", backend)
	}
	log.WithField("backend", backend).Debug("stats store open")
	return stats.InstrumentStore(store), nil
}

func closeIfCloser(s stats.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
