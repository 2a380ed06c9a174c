package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsRequest is a translation request arriving over the socket.
type wsRequest struct {
	Type string `json:"type"` // only "translate_text" is supported
	Text string `json:"text"`
}

// wsMessage is a server-to-client frame. Type is one of "start",
// "progress", "complete", or "error".
type wsMessage struct {
	Type        string `json:"type"`
	Current     int    `json:"current,omitempty"`
	Total       int    `json:"total,omitempty"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// translateWebSocketHandler streams chunk-level progress while translating.
func (s *Server) translateWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("WebSocket read failed", "error", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			s.sendWS(conn, wsMessage{Type: "error", Error: "invalid request"})
			continue
		}
		if req.Type != "translate_text" || req.Text == "" {
			s.sendWS(conn, wsMessage{Type: "error", Error: "unsupported request"})
			continue
		}

		s.handleWSTranslation(r.Context(), conn, req.Text)
	}
}

func (s *Server) handleWSTranslation(ctx context.Context, conn *websocket.Conn, text string) {
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	progress := &wsProgress{server: s, conn: conn}
	pl := s.progressPl.WithProgress(progress)

	result, err := pl.ProcessText(ctx, text)
	if err != nil {
		s.sendWS(conn, wsMessage{Type: "error", Error: err.Error()})
		return
	}
	s.sendWS(conn, wsMessage{Type: "complete", Translation: result.Translation})
}

func (s *Server) sendWS(conn *websocket.Conn, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to encode WebSocket message", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Warn("WebSocket write failed", "error", err)
	}
}

// wsProgress forwards pipeline progress to the socket. Gorilla connections
// allow one concurrent writer, so sends are serialized.
type wsProgress struct {
	server *Server
	conn   *websocket.Conn
	mu     sync.Mutex
}

func (p *wsProgress) OnStart(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.server.sendWS(p.conn, wsMessage{Type: "start", Total: total})
}

func (p *wsProgress) OnProgress(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.server.sendWS(p.conn, wsMessage{Type: "progress", Current: current, Total: total})
}

func (p *wsProgress) OnComplete() {}

func (p *wsProgress) OnError(current int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.server.sendWS(p.conn, wsMessage{Type: "error", Current: current, Error: err.Error()})
}
