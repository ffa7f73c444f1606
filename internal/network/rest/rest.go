// Package rest talks to the game service's HTTP endpoints. The server
// only admits websocket connections for players it has seen over HTTP:
// a guest registers through auth_guest and enters a room through
// join_game (or create_game) before dialing the socket.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-2xx answer from the service, FastAPI style.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server said %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server said %d", e.Status)
}

// JoinResult is the join_game answer. WebsocketConnection is the URL
// the server suggests; the client builds its own from config instead.
type JoinResult struct {
	GameID              string `json:"game_id"`
	PlayerID            string `json:"player_id"`
	WebsocketConnection string `json:"websocket_connection"`
}

// Client is a thin caller for the service's REST surface.
type Client struct {
	base string
	http *http.Client
}

// NewClient prepares a client against the HTTP base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthGuest registers a guest and returns the server-issued player id.
// The socket endpoint only admits ids the server handed out.
func (c *Client) AuthGuest(ctx context.Context, playerName string) (string, error) {
	var out struct {
		PlayerID string `json:"player_id"`
	}
	err := c.post(ctx, "auth_guest", url.Values{"player_name": {playerName}}, &out)
	if err != nil {
		return "", fmt.Errorf("auth_guest: %w", err)
	}
	return out.PlayerID, nil
}

// CreateGame opens a new room and returns its id.
func (c *Client) CreateGame(ctx context.Context, playersLimit int) (string, error) {
	var out struct {
		GameID string `json:"game_id"`
	}
	q := url.Values{"set_players_limit": {strconv.Itoa(playersLimit)}}
	if err := c.post(ctx, "create_game", q, &out); err != nil {
		return "", fmt.Errorf("create_game: %w", err)
	}
	return out.GameID, nil
}

// JoinGame seats the player in a room. An empty gameID lets the server
// match any open room, creating one when none waits.
func (c *Client) JoinGame(ctx context.Context, playerID, gameID string) (JoinResult, error) {
	q := url.Values{"player_id": {playerID}}
	if gameID != "" {
		q.Set("game_id", gameID)
	}
	var out JoinResult
	if err := c.post(ctx, "join_game", q, &out); err != nil {
		return JoinResult{}, fmt.Errorf("join_game: %w", err)
	}
	return out, nil
}

// ExitGame releases the player's seat. Best effort on teardown.
func (c *Client) ExitGame(ctx context.Context, playerID string) error {
	if err := c.post(ctx, "exit_game", url.Values{"player_id": {playerID}}, nil); err != nil {
		return fmt.Errorf("exit_game: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, query url.Values, out any) error {
	target, err := url.JoinPath(c.base, "api", "v1", endpoint)
	if err != nil {
		return err
	}
	target += "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s answer: %w", endpoint, err)
	}
	return nil
}
