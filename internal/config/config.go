// Package config loads the client configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	Server Server `yaml:"server"`
	Game   Game   `yaml:"game"`
}

// Server points at the game service. An empty websocket URL puts the
// client into offline mode with scripted sessions.
type Server struct {
	WebsocketURL string `yaml:"websocket_url"`
	HTTPURL      string `yaml:"http_url"`
}

// Game tunes client-side behavior.
type Game struct {
	LobbyRetrySeconds int    `yaml:"lobby_retry_seconds"` // delay before the lobby stream reconnects
	OfflineScenario   string `yaml:"offline_scenario"`    // game_start / mid_game / end_game
}

// LobbyRetryDelay returns the lobby stream reconnect delay.
func (g Game) LobbyRetryDelay() time.Duration {
	return time.Duration(g.LobbyRetrySeconds) * time.Second
}

// Offline reports whether the client should run on the scripted provider.
func (c *Config) Offline() bool {
	return c.Server.WebsocketURL == ""
}

// Load reads the config file, filling defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Game.LobbyRetrySeconds == 0 {
		c.Game.LobbyRetrySeconds = 5
	}
	if c.Game.OfflineScenario == "" {
		c.Game.OfflineScenario = "mid_game"
	}
}
