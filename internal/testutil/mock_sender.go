// Package testutil provides shared test doubles: a mock intent sender and
// an in-process WebSocket game server.
package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

// MockSender is a testify mock of the session.Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) PlayCard(attack card.Card, defend *card.Card) error {
	args := m.Called(attack, defend)
	return args.Error(0)
}

func (m *MockSender) PassTurn() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSender) ChangeStatus(status string) error {
	args := m.Called(status)
	return args.Error(0)
}
