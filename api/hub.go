package api

import (
	"sync"

	"github.com/battlesnakeio/duel/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Message types sent on the match stream.
const (
	MessageFrame  = "frame"
	MessageResult = "result"
)

// subscriberBuffer is how many messages a spectator may fall behind before
// frames are dropped for it.
const subscriberBuffer = 64

// Message is one message on the match stream.
type Message struct {
	Type   string             `json:"type"`
	Frame  *rules.Frame       `json:"frame,omitempty"`
	Result *rules.MatchResult `json:"result,omitempty"`
}

type subscriber struct {
	send chan Message
}

// Hub keeps the latest frame of the running match and fans every frame out
// to the connected spectators. It satisfies worker.Renderer.
type Hub struct {
	lock   sync.RWMutex
	latest *rules.Frame
	result *rules.MatchResult
	subs   map[*subscriber]struct{}
	closed bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[*subscriber]struct{}{}}
}

// Render records frame as the latest and sends it to every spectator.
func (h *Hub) Render(frame *rules.Frame) error {
	if frame == nil {
		return errors.New("api: received nil frame")
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.result != nil && h.result.MatchID != frame.MatchID {
		h.result = nil
	}
	h.latest = frame
	h.broadcast(Message{Type: MessageFrame, Frame: frame})
	return nil
}

// RenderResult records the result and sends it to every spectator.
func (h *Hub) RenderResult(result rules.MatchResult) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.result = &result
	h.broadcast(Message{Type: MessageResult, Result: &result})
	return nil
}

// broadcast must be called with the lock held. Spectators that are too far
// behind miss frames; a result evicts their oldest queued message instead.
func (h *Hub) broadcast(m Message) {
	for s := range h.subs {
		select {
		case s.send <- m:
			continue
		default:
		}
		if m.Type != MessageResult {
			log.WithField("Type", m.Type).Debug("spectator behind, dropping message")
			continue
		}
		// Only the hub sends, so once one message is taken the send fits.
		select {
		case <-s.send:
		default:
		}
		s.send <- m
	}
}

// Latest returns the most recent frame, if any.
func (h *Hub) Latest() (*rules.Frame, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.latest, h.latest != nil
}

// Result returns the result of the latest match once it has finished.
func (h *Hub) Result() (*rules.MatchResult, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return h.result, h.result != nil
}

// subscribe registers a spectator. The latest frame and result, when known,
// are queued first. It returns nil once the hub is closed.
func (h *Hub) subscribe() *subscriber {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.closed {
		return nil
	}
	s := &subscriber{send: make(chan Message, subscriberBuffer)}
	if h.latest != nil {
		s.send <- Message{Type: MessageFrame, Frame: h.latest}
	}
	if h.result != nil {
		s.send <- Message{Type: MessageResult, Result: h.result}
	}
	h.subs[s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

// Subscribers returns the number of connected spectators.
func (h *Hub) Subscribers() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.subs)
}

// Close ends every stream. Later subscribers are turned away.
func (h *Hub) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		close(s.send)
	}
}
