// Package client owns the game-session socket lifecycle: connect with
// identity attached, pump frames in and out, and tear down cleanly. The
// game session never reconnects by itself; a dropped socket stays dropped
// and the state machine just reports it.
package client

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/logger"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/codec"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
)

// Status is the connection lifecycle state.
type Status int32

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusError
	// StatusUsingMocks marks a session running on the offline provider;
	// there is no socket and nothing to reconnect.
	StatusUsingMocks
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	case StatusUsingMocks:
		return "offline"
	default:
		return "disconnected"
	}
}

// ErrClosed is returned when sending on a torn-down connection.
var logz = logger.For("socket")

var ErrClosed = errors.New("connection closed")

// Client is the WebSocket connection manager for one game session.
type Client struct {
	url      string
	gameID   string
	playerID string

	conn    *websocket.Conn
	send    chan []byte
	receive chan *protocol.Message
	done    chan struct{}

	status atomic.Int32

	// Callbacks, all optional. They fire from the read pump goroutine.
	OnMessage func(*protocol.Message)
	OnError   func(error)
	OnClose   func()

	mu     sync.RWMutex
	closed bool
}

// NewClient builds a manager for one (gameID, playerID) session. The
// token rides along as a query parameter when present.
func NewClient(baseURL, gameID, playerID, token string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	u = u.JoinPath("api", "v1", "ws", gameID)
	q := u.Query()
	q.Set("player_id", playerID)
	if token != "" {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()

	return &Client{
		url:      u.String(),
		gameID:   gameID,
		playerID: playerID,
		send:     make(chan []byte, 256),
		receive:  make(chan *protocol.Message, 256),
		done:     make(chan struct{}),
	}, nil
}

// Connect dials the server, starts the pumps and announces the player.
func (c *Client) Connect() error {
	c.status.Store(int32(StatusConnecting))

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		c.status.Store(int32(StatusError))
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	// Close may run concurrently from the UI; it reads c.conn under mu.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.mu.Unlock()
	c.status.Store(int32(StatusConnected))

	go c.readPump()
	go c.writePump()

	return c.PlayerConnected()
}

// Status returns the current lifecycle state.
func (c *Client) Status() Status {
	return Status(c.status.Load())
}

// IsConnected reports whether frames can still be sent.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil && c.Status() == StatusConnected
}

// SendMessage queues one encoded frame for the write pump.
func (c *Client) SendMessage(msg *protocol.Message) error {
	data, err := encodeFrame(msg)
	if err != nil {
		return err
	}
	return c.sendRaw(data)
}

func (c *Client) sendRaw(data []byte) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrClosed
	}
	c.mu.RUnlock()

	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Receive blocks for the next decoded message.
func (c *Client) Receive() (*protocol.Message, error) {
	select {
	case msg := <-c.receive:
		return msg, nil
	case <-c.done:
		return nil, ErrClosed
	}
}

// Done is closed when the connection is torn down. Late frames are
// dropped against it instead of reaching a discarded session.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close tears the connection down: a best-effort goodbye intent, then the
// socket itself. Always closes the transport so nothing leaks.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	if c.conn != nil && c.Status() == StatusConnected {
		goodbye := disconnectMessage(c.gameID, c.playerID)
		data, err := encodeFrame(goodbye)
		codec.PutMessage(goodbye)
		if err == nil {
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logz.Errorf("goodbye intent not delivered: %v", err)
			}
		}
	}

	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.status.Store(int32(StatusDisconnected))
}
