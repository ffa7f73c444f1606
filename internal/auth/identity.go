// Package auth keeps the player identity the server knows us by.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/logger"
)

const identityFile = "identity.json"

var logz = logger.For("identity")

// Identity is the persistent player credential. The server only needs
// the id and token; the name is what other players see.
type Identity struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// Load returns the stored identity, minting and persisting a fresh
// guest one on first run. A read-only home directory degrades to an
// in-memory identity instead of failing.
func Load() (*Identity, error) {
	path, err := identityPath()
	if err == nil {
		if id, readErr := readIdentity(path); readErr == nil {
			return id, nil
		} else if !os.IsNotExist(readErr) {
			logz.Errorf("file unreadable, minting a new one: %v", readErr)
		}
	}

	id := mintGuest()
	if err == nil {
		if saveErr := saveIdentity(path, id); saveErr != nil {
			logz.Errorf("not persisted: %v", saveErr)
		}
	}
	return id, nil
}

func mintGuest() *Identity {
	playerID := uuid.NewString()
	return &Identity{
		PlayerID: playerID,
		Name:     "guest-" + playerID[:8],
		Token:    uuid.NewString(),
	}
}

func identityPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".durak", identityFile), nil
}

func readIdentity(path string) (*Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if id.PlayerID == "" {
		return nil, fmt.Errorf("parse %s: missing player_id", path)
	}
	if id.Name == "" {
		id.Name = "guest-" + id.PlayerID[:min(8, len(id.PlayerID))]
	}
	return &id, nil
}

func saveIdentity(path string, id *Identity) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
