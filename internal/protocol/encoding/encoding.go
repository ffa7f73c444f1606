// Package encoding converts between raw text frames and protocol messages.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/codec"
)

// ErrMalformedFrame marks a frame that is not valid JSON or not a valid
// envelope. Callers drop the frame and keep the connection alive.
var ErrMalformedFrame = errors.New("malformed frame")

// NewMessage creates a message with the payload marshaled into the data
// field. Use PutMessage to return it to the pool after sending.
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	msg := codec.GetMessage()
	msg.Type = msgType

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			codec.PutMessage(msg)
			return nil, fmt.Errorf("encode %s payload: %w", msgType, err)
		}
		msg.Data = data
	}
	return msg, nil
}

// MustNewMessage creates a message and panics on encoding failure. Only
// for payload types that are known to marshal.
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode renders the message as a JSON text frame.
func Encode(m *protocol.Message) ([]byte, error) {
	buf := codec.GetBuffer()
	defer codec.PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	// Copy out: the buffer goes back to the pool.
	return append([]byte(nil), buf.Bytes()...), nil
}

// Decode parses one raw text frame into a message. A frame that is not a
// JSON envelope fails with ErrMalformedFrame; a frame of unknown type
// decodes fine and is the caller's to ignore.
// Use codec.PutMessage to return the message to the pool.
func Decode(data []byte) (*protocol.Message, error) {
	msg := codec.GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		codec.PutMessage(msg)
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if msg.Type == "" {
		codec.PutMessage(msg)
		return nil, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	}
	return msg, nil
}

// ParsePayload unmarshals the message data into the given payload type.
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Data) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s data: %v", ErrMalformedFrame, msg.Type, err)
	}
	return &payload, nil
}
