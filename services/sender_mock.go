package services

import (
	"errors"
	"sync"
)

// MockSender is a mock implementation of Sender for testing. It records
// all delivered messages and can be told to fail.
type MockSender struct {
	mu       sync.Mutex
	messages []MockMessage
	failWith error
}

// MockMessage is one message recorded by MockSender.
type MockMessage struct {
	ChatID int64
	Text   string
}

// NewMockSender creates a new mock sender
func NewMockSender() *MockSender {
	return &MockSender{}
}

// FailWith makes every subsequent SendText return the given error.
// Passing nil restores normal delivery.
func (m *MockSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// FailAlways makes every subsequent SendText fail with a generic error.
func (m *MockSender) FailAlways() {
	m.FailWith(errors.New("mock delivery failure"))
}

// SendText records the message, or fails if configured to.
func (m *MockSender) SendText(chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.messages = append(m.messages, MockMessage{ChatID: chatID, Text: text})
	return nil
}

// Messages returns a copy of all recorded messages.
func (m *MockSender) Messages() []MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockMessage(nil), m.messages...)
}
