package client

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/encoding"
)

// readPump reads frames off the socket until it dies. One malformed frame
// is logged and dropped; it never tears the connection down.
func (c *Client) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logz.Panic(r)
		}
		c.markDropped()
		if c.OnClose != nil {
			c.OnClose()
		}
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.status.Store(int32(StatusError))
				if c.OnError != nil {
					c.OnError(err)
				}
			}
			return
		}

		msg, err := encoding.Decode(raw)
		if err != nil {
			if errors.Is(err, encoding.ErrMalformedFrame) {
				logz.Errorf("dropping frame: %v", err)
				continue
			}
			logz.Errorf("decode: %v", err)
			continue
		}

		select {
		case <-c.done:
			// Session already unmounted; a late frame must not mutate
			// a discarded state.
			return
		default:
		}

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}

		select {
		case c.receive <- msg:
		default:
			logz.Errorf("receive buffer full, dropping %s", msg.Type)
		}
	}
}

// writePump owns all socket writes: queued frames plus keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logz.Panic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// markDropped records that the transport is gone. Close() decides the
// final state; a socket-initiated drop lands in Disconnected unless an
// explicit error was already recorded.
func (c *Client) markDropped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	_ = c.conn.Close()
	if c.Status() != StatusError {
		c.status.Store(int32(StatusDisconnected))
	}
}
