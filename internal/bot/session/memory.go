package session

import (
	"context"
	"sync"

	"github.com/speedyfix/auto-garage/internal/bot/dialog"
)

// Memory keeps sessions in a process-local map. Good for a single bot
// instance and for tests; sessions die with the process.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*dialog.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*dialog.Session)}
}

func (m *Memory) Get(_ context.Context, id string) (*dialog.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (m *Memory) Save(_ context.Context, session *dialog.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}
