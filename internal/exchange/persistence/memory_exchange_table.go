package persistence

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/usecases"
	"sync"
)

func NewMemoryExchangeTable() *MemoryExchangeTable {
	return &MemoryExchangeTable{
		clients: make(map[string]map[domain.Index]string),
	}
}

var _ usecases.ExchangeTable = (*MemoryExchangeTable)(nil)

type MemoryExchangeTable struct {
	mu      sync.RWMutex
	clients map[string]map[domain.Index]string
}

func (t *MemoryExchangeTable) Set(_ context.Context, clientID string, kv domain.ExchangeKV) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	values, ok := t.clients[clientID]
	if !ok {
		values = make(map[domain.Index]string)
		t.clients[clientID] = values
	}
	values[kv.K] = kv.V
	return nil
}

func (t *MemoryExchangeTable) Get(_ context.Context, clientID string, index domain.Index) (string, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	value, ok := t.clients[clientID][index]
	return value, ok, nil
}

// GetAll returns the known values for indices, in the requested order. Unknown
// indices are skipped.
func (t *MemoryExchangeTable) GetAll(_ context.Context, clientID string, indices []domain.Index) ([]domain.ExchangeKV, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	values := t.clients[clientID]
	result := make([]domain.ExchangeKV, 0, len(indices))
	for _, index := range indices {
		if value, ok := values[index]; ok {
			result = append(result, domain.ExchangeKV{K: index, V: value})
		}
	}
	return result, nil
}
