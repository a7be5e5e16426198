// Package realtime pushes notifications to connected websocket sessions.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod must stay below pongWait.
	pingPeriod = pongWait * 9 / 10
)

type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *session) write(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub tracks live sessions by user id. A user may hold several at once.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[*session]struct{}
	log      zerolog.Logger

	pongWait   time.Duration
	pingPeriod time.Duration
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions:   make(map[int64]map[*session]struct{}),
		log:        log,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
}

func (h *Hub) register(userID int64, conn *websocket.Conn) *session {
	s := &session{conn: conn}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[userID] == nil {
		h.sessions[userID] = make(map[*session]struct{})
	}
	h.sessions[userID][s] = struct{}{}
	return s
}

func (h *Hub) unregister(userID int64, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions[userID], s)
	if len(h.sessions[userID]) == 0 {
		delete(h.sessions, userID)
	}
}

// Sessions reports how many sessions userID has open.
func (h *Hub) Sessions(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// Serve registers conn for userID and blocks reading until the peer goes
// away. Inbound frames are discarded. The session is pinged every pingPeriod
// and any frame or pong from the peer keeps it alive for another pongWait.
func (h *Hub) Serve(userID int64, conn *websocket.Conn) {
	s := h.register(userID, conn)
	h.log.Info().Int64("user_id", userID).Msg("websocket session opened")
	done := make(chan struct{})
	defer func() {
		close(done)
		h.unregister(userID, s)
		_ = conn.Close()
		h.log.Info().Int64("user_id", userID).Msg("websocket session closed")
	}()

	extend := func() error { return conn.SetReadDeadline(time.Now().Add(h.pongWait)) }
	_ = extend()
	conn.SetPongHandler(func(string) error { return extend() })
	conn.SetPingHandler(func(data string) error {
		_ = extend()
		s.mu.Lock()
		defer s.mu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	go h.keepalive(userID, s, done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Int64("user_id", userID).Msg("websocket closed unexpectedly")
			}
			return
		}
		_ = extend()
	}
}

func (h *Hub) keepalive(userID int64, s *session, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.ping(); err != nil {
				h.log.Debug().Err(err).Int64("user_id", userID).Msg("websocket ping failed")
				return
			}
		}
	}
}

// Publish writes n to every session of its recipient. Offline users are not an error.
func (h *Hub) Publish(_ context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	h.mu.RLock()
	targets := make([]*session, 0, len(h.sessions[n.UserID]))
	for s := range h.sessions[n.UserID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.write(payload); err != nil {
			h.log.Warn().Err(err).Int64("user_id", n.UserID).Msg("drop websocket session")
			h.unregister(n.UserID, s)
			_ = s.conn.Close()
		}
	}
	return nil
}
