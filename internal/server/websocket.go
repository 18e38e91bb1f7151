package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"bleff/internal/db"

	"github.com/gorilla/websocket"
)

type wsHub struct {
	mu     sync.Mutex
	groups map[uint]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[uint]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, gameID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(gameID uint, payload any) {
	h.mu.Lock()
	group := h.groups[gameID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(gameID, conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID, ok := urlID(r, "gameID")
	if !ok {
		http.NotFound(w, r)
		return
	}
	var exists int64
	if err := s.db.Model(&db.Game{}).Where("id = ?", gameID).Count(&exists).Error; err != nil || exists == 0 {
		http.NotFound(w, r)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%d remote=%s", gameID, r.RemoteAddr)
	s.ws.Add(gameID, conn)
	go s.readWS(gameID, conn)
}

func (s *Server) readWS(gameID uint, conn *websocket.Conn) {
	defer s.ws.Remove(gameID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%d error=%v", gameID, err)
			return
		}
	}
}
