// Package api serves player stats and a read-only view of the running match
// over HTTP. Spectators can poll the latest frame or follow the match over a
// websocket.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/battlesnakeio/duel/stats"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// Spectating is read-only, any origin may watch.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the spectator HTTP server.
type Server struct {
	hs    *http.Server
	store stats.Store
	hub   *Hub
}

// New returns a server for addr. The match routes are only served when hub
// is not nil.
func New(addr string, store stats.Store, hub *Hub) *Server {
	s := &Server{store: store, hub: hub}

	router := httprouter.New()
	router.GET("/players", s.listPlayers)
	router.GET("/players/:name", s.getPlayer)
	if hub != nil {
		router.GET("/match", s.getMatch)
		router.GET("/match/stream", s.streamMatch)
	}

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.hs.Handler }

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.WithField("addr", s.hs.Addr).Info("spectator api listening")
	if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "spectator api failed to listen")
	}
	return nil
}

// Shutdown ends the match streams and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	return s.hs.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	records, err := s.store.ListPlayers(r.Context())
	if err != nil {
		log.WithError(err).Error("unable to list players")
		writeError(w, http.StatusInternalServerError, "unable to list players")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	record, err := s.store.GetPlayer(r.Context(), name)
	if errors.Cause(err) == stats.ErrNotFound {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		log.WithError(err).WithField("Name", name).Error("unable to get player")
		writeError(w, http.StatusInternalServerError, "unable to get player")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	frame, ok := s.hub.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no match has started")
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) streamMatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("unable to upgrade spectator")
		return
	}
	defer conn.Close()

	sub := s.hub.subscribe()
	if sub == nil {
		closeStream(conn)
		return
	}
	defer s.hub.unsubscribe(sub)

	// Spectators never send data; reading handles pongs and notices when
	// the client goes away.
	gone := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case m, ok := <-sub.send:
			if !ok {
				closeStream(conn)
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(m); err != nil {
				log.WithError(err).Debug("spectator write failed")
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}

func closeStream(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
