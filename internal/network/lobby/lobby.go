// Package lobby streams the list of open games from the server.
//
// The server exposes the lobby as a server-sent events endpoint. Each
// "message" event carries the full room list, so the client never has
// to merge deltas; a "stop_stream" event tells us the server is done.
package lobby

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/logger"
)

var logz = logger.For("lobby")

// Game describes one joinable room in the lobby listing.
type Game struct {
	GameID        string `json:"game_id"`
	PlayersInside int    `json:"players_inside"`
	PlayersLimit  int    `json:"players_limit"`
	Password      bool   `json:"password"`
}

// Stream consumes the lobby event stream and republishes room lists.
type Stream struct {
	endpoint   string
	retryDelay time.Duration
	client     *http.Client

	updates chan []Game
	errs    chan error
}

// NewStream prepares a lobby stream against the given HTTP base URL.
func NewStream(baseURL string, retryDelay time.Duration) (*Stream, error) {
	endpoint, err := url.JoinPath(baseURL, "api", "v1", "games", "stream")
	if err != nil {
		return nil, fmt.Errorf("lobby endpoint: %w", err)
	}
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}
	return &Stream{
		endpoint:   endpoint,
		retryDelay: retryDelay,
		client:     &http.Client{},
		updates:    make(chan []Game, 4),
		errs:       make(chan error, 4),
	}, nil
}

// Updates delivers each room list the server publishes.
func (s *Stream) Updates() <-chan []Game { return s.updates }

// Errors delivers connection failures. The stream keeps retrying
// after each one until the context is cancelled.
func (s *Stream) Errors() <-chan error { return s.errs }

// Run consumes the stream until ctx is cancelled, reconnecting after
// a fixed delay whenever the connection drops. It closes the update
// channel on return.
func (s *Stream) Run(ctx context.Context) {
	defer close(s.updates)

	for {
		if err := s.consume(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logz.Errorf("%v", err)
			select {
			case s.errs <- err:
			default:
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retryDelay):
		}
	}
}

func (s *Stream) consume(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lobby stream: unexpected status %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	event := ""
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			done := s.dispatch(event, data.String())
			event = ""
			data.Reset()
			if done {
				return nil
			}
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// comment line, keep-alive filler
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("lobby stream: connection closed")
}

// dispatch handles one complete SSE event. It returns true when the
// server signalled the end of the stream.
func (s *Stream) dispatch(event, data string) bool {
	switch event {
	case "stop_stream":
		return true
	case "ping", "":
		return false
	case "message":
		var games []Game
		if err := json.Unmarshal([]byte(data), &games); err != nil {
			logz.Errorf("bad room list: %v", err)
			return false
		}
		s.updates <- games
	}
	return false
}
