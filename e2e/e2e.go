// Package e2e drives whole matches through the runner and watches them from
// the outside, the way a spectator would.
package e2e

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/battlesnakeio/duel/api"
	"github.com/battlesnakeio/duel/rules"
	"github.com/battlesnakeio/duel/stats"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) get(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return errors.Errorf("GET %s: %s", path, resp.Status)
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}

func (c *client) players() ([]*stats.Record, error) {
	var records []*stats.Record
	if err := c.get("/players", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *client) player(name string) (*stats.Record, error) {
	rec := &stats.Record{}
	if err := c.get("/players/"+url.PathEscape(name), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *client) latestFrame() (*rules.Frame, error) {
	frame := &rules.Frame{}
	if err := c.get("/match", frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// follow opens the match stream.
func (c *client) follow(ctx context.Context) (*stream, error) {
	u := "ws" + strings.TrimPrefix(c.apiURL, "http") + "/match/stream"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to follow match")
	}
	s := &stream{conn: conn}
	if d, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(d)
	}
	return s, nil
}

type stream struct {
	conn *websocket.Conn
}

func (s *stream) next() (*api.Message, error) {
	m := &api.Message{}
	if err := s.conn.ReadJSON(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *stream) Close() error { return s.conn.Close() }

// randomInput mashes one direction per player every tick.
type randomInput struct {
	lock sync.Mutex
	rand *rand.Rand
}

func newRandomInput() *randomInput {
	return &randomInput{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (in *randomInput) Poll() rules.KeyState {
	in.lock.Lock()
	defer in.lock.Unlock()
	var keys rules.KeyState
	keys.Press(rules.ButtonP1Up + rules.Button(in.rand.Intn(4)))
	keys.Press(rules.ButtonP2Up + rules.Button(in.rand.Intn(4)))
	return keys
}
