package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Frame is one raw inbound frame as the server saw it.
type Frame struct {
	Raw  []byte
	Type string
}

// GameServer is an in-process WebSocket endpoint for connection tests.
// It records every frame a client sends and can push canned frames back.
type GameServer struct {
	httpServer *httptest.Server
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	conns []*websocket.Conn

	received chan Frame
}

// NewGameServer starts the server; it is shut down with the test.
func NewGameServer(t *testing.T) *GameServer {
	t.Helper()

	s := &GameServer{
		received: make(chan Frame, 64),
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// URL returns the ws:// base address clients should dial.
func (s *GameServer) URL() string {
	return "ws" + strings.TrimPrefix(s.httpServer.URL, "http")
}

func (s *GameServer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var envelope struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(raw, &envelope)
		select {
		case s.received <- Frame{Raw: raw, Type: envelope.Type}:
		default:
		}
	}
}

// Push delivers one raw text frame to every connected client.
func (s *GameServer) Push(t *testing.T, frame string) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conns) == 0 {
		t.Fatal("no connected clients to push to")
	}
	for _, conn := range s.conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatalf("push frame: %v", err)
		}
	}
}

// NextFrame waits for the next frame a client sent.
func (s *GameServer) NextFrame(t *testing.T) Frame {
	t.Helper()

	select {
	case f := <-s.received:
		return f
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a client frame")
		return Frame{}
	}
}

// Close drops every connection and stops the server.
func (s *GameServer) Close() {
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
	s.mu.Unlock()
	s.httpServer.Close()
}
