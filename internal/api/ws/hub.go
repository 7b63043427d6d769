package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
)

// Session is one open channel connection bound to a resolved identity.
// Writes are serialised through a mutex because gorilla/websocket allows at
// most one concurrent writer.
type Session struct {
	conn     *websocket.Conn
	identity domain.Identity

	writeMu sync.Mutex
}

func newSession(conn *websocket.Conn, identity domain.Identity) *Session {
	return &Session{conn: conn, identity: identity}
}

func (s *Session) send(r Reply) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(r)
}

func (s *Session) close() {
	_ = s.conn.Close()
}

// Hub tracks open sessions per user id so a user can disconnect their other
// clients.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*Session]struct{}
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{sessions: make(map[string]map[*Session]struct{}), log: log}
}

func (h *Hub) register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.sessions[s.identity.UserID]
	if !ok {
		set = make(map[*Session]struct{})
		h.sessions[s.identity.UserID] = set
	}
	set[s] = struct{}{}
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.sessions[s.identity.UserID]
	if !ok {
		return
	}
	delete(set, s)
	if len(set) == 0 {
		delete(h.sessions, s.identity.UserID)
	}
}

// DisconnectOthers closes every session of the user except keep.
func (h *Hub) DisconnectOthers(userID string, keep *Session) int {
	h.mu.Lock()
	var victims []*Session
	for s := range h.sessions[userID] {
		if s != keep {
			victims = append(victims, s)
		}
	}
	h.mu.Unlock()

	for _, s := range victims {
		s.close()
	}
	if len(victims) > 0 {
		h.log.Debug().Str("user_id", userID).Int("count", len(victims)).Msg("disconnected other channel clients")
	}
	return len(victims)
}

// count returns the number of open sessions across all users.
func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, set := range h.sessions {
		n += len(set)
	}
	return n
}
