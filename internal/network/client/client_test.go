package client

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/testutil"
)

func newTestClient(t *testing.T, srv *testutil.GameServer) *Client {
	t.Helper()

	c, err := NewClient(srv.URL(), "game-1", "player-1", "secret")
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewClientURL(t *testing.T) {
	t.Run("token attached as query parameter", func(t *testing.T) {
		c, err := NewClient("ws://example.org", "g1", "p1", "tok")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(c.url, "ws://example.org/api/v1/ws/g1?"))
		assert.Contains(t, c.url, "player_id=p1")
		assert.Contains(t, c.url, "token=tok")
	})

	t.Run("no token, no parameter", func(t *testing.T) {
		c, err := NewClient("ws://example.org", "g1", "p1", "")
		require.NoError(t, err)
		assert.NotContains(t, c.url, "token")
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewClient("://nope", "g1", "p1", "")
		assert.Error(t, err)
	})
}

func TestConnectAnnouncesPlayer(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)

	require.NoError(t, c.Connect())
	assert.Equal(t, StatusConnected, c.Status())
	assert.True(t, c.IsConnected())

	frame := srv.NextFrame(t)
	require.Equal(t, string(protocol.MsgPlayerConnected), frame.Type)

	var msg protocol.Message
	require.NoError(t, json.Unmarshal(frame.Raw, &msg))
	var payload protocol.PlayerConnectedPayload
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "game-1", payload.GameID)
	assert.Equal(t, "player-1", payload.PlayerID)
}

func TestReceiveDecodedMessages(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)
	require.NoError(t, c.Connect())
	srv.NextFrame(t) // player_connected

	srv.Push(t, `{"type":"player_status","data":{"player_id":"p2","status":"ready"}}`)

	msg, err := c.Receive()
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPlayerStatus, msg.Type)
}

func TestMalformedFrameKeepsConnectionAlive(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)
	require.NoError(t, c.Connect())
	srv.NextFrame(t)

	srv.Push(t, `{{{not json`)
	srv.Push(t, `{"type":"game_phase_changed","data":{"phase":"FightState"}}`)

	msg, err := c.Receive()
	require.NoError(t, err, "one bad frame must not kill the session")
	assert.Equal(t, protocol.MsgGamePhaseChanged, msg.Type)
	assert.True(t, c.IsConnected())
}

func TestPlayCardFrameShape(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)
	require.NoError(t, c.Connect())
	srv.NextFrame(t)

	defend := card.Card{Rank: card.Rank7, Suit: card.Hearts}
	require.NoError(t, c.PlayCard(card.Card{Rank: card.Rank6, Suit: card.Hearts}, &defend))

	frame := srv.NextFrame(t)
	require.Equal(t, string(protocol.MsgPlayCard), frame.Type)

	// The service reads the cards from the envelope root.
	var root map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(frame.Raw, &root))
	assert.Contains(t, root, "attack_card")
	assert.Contains(t, root, "defend_card")
	assert.NotContains(t, root, "data")
}

func TestCloseSendsGoodbyeAndRejectsFurtherSends(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)
	require.NoError(t, c.Connect())
	srv.NextFrame(t)

	c.Close()

	frame := srv.NextFrame(t)
	assert.Equal(t, string(protocol.MsgPlayerDisconnected), frame.Type)

	assert.Equal(t, StatusDisconnected, c.Status())
	assert.ErrorIs(t, c.PassTurn(), ErrClosed)

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("Done must be closed after teardown")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	srv := testutil.NewGameServer(t)
	c := newTestClient(t, srv)
	require.NoError(t, c.Connect())

	c.Close()
	c.Close() // second close must not panic
}

func TestConnectFailure(t *testing.T) {
	c, err := NewClient("ws://127.0.0.1:1", "g1", "p1", "")
	require.NoError(t, err)

	assert.Error(t, c.Connect())
	assert.Equal(t, StatusError, c.Status())
}
