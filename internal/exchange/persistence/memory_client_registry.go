package persistence

import (
	"context"
	"essensys-server/internal/exchange/usecases"
	"sort"
	"sync"
	"time"
)

type clientState struct {
	connected bool
	lastSeen  time.Time
}

func NewMemoryClientRegistry() *MemoryClientRegistry {
	return &MemoryClientRegistry{
		clients: make(map[string]*clientState),
	}
}

var _ usecases.ClientRegistry = (*MemoryClientRegistry)(nil)

type MemoryClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]*clientState
}

func (r *MemoryClientRegistry) Touch(_ context.Context, clientID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.clients[clientID]
	if !ok {
		state = &clientState{}
		r.clients[clientID] = state
	}
	state.connected = true
	state.lastSeen = at
	return nil
}

func (r *MemoryClientRegistry) IsConnected(_ context.Context, clientID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.clients[clientID]
	return ok && state.connected, nil
}

// MarkStale disconnects every client last seen before olderThan and returns their ids
// sorted.
func (r *MemoryClientRegistry) MarkStale(_ context.Context, olderThan time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stale := make([]string, 0)
	for clientID, state := range r.clients {
		if state.connected && state.lastSeen.Before(olderThan) {
			state.connected = false
			stale = append(stale, clientID)
		}
	}
	sort.Strings(stale)
	return stale, nil
}
