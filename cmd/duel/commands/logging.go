package commands

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging sets the log level and sends logs to file. The terminal UI
// owns the screen, so logs only go to stderr when file is empty.
func setupLogging(level, file string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	log.SetLevel(lvl)
	if file == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(file, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open log file")
	}
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetOutput(f)
	return logFile{f}, nil
}

// logFile sends logs back to stderr when closed.
type logFile struct{ f *os.File }

func (l logFile) Close() error {
	log.SetOutput(os.Stderr)
	return l.f.Close()
}
