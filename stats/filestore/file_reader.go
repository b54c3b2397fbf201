package filestore

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

var openFileReader = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// readJournal returns every entry in the journal. A missing journal is empty
// and lines that fail to decode are skipped.
func readJournal(path string) ([]entry, error) {
	f, err := openFileReader(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := []entry{}
	r := bufio.NewReader(f)
	for line := 1; ; line++ {
		bytes, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(bytes) > 0 {
			e := entry{}
			if jErr := json.Unmarshal(bytes, &e); jErr != nil {
				log.WithError(jErr).WithField("Line", line).Warn("skipping unreadable journal line")
			} else {
				entries = append(entries, e)
			}
		}
		if err == io.EOF {
			return entries, nil
		}
	}
}
