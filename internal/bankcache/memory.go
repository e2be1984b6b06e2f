package bankcache

import (
	"context"
	"sync"
)

// Memory is the process-local cache. Each process instance holds its own
// copy, so a deployment with several instances only converges once the other
// instances re-bootstrap; see Redis for the shared variant.
type Memory struct {
	mu          sync.RWMutex
	activeBank  string
	initialized bool
}

func NewMemory() *Memory {
	return &Memory{activeBank: DefaultProvider}
}

func (m *Memory) ActiveBank(_ context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeBank
}

func (m *Memory) SetActiveBank(_ context.Context, provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeBank = Normalize(provider)
	m.initialized = true
	return nil
}

func (m *Memory) Initialized(_ context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}
