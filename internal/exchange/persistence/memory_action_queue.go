package persistence

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/usecases"
	"slices"
	"sync"
)

func NewMemoryActionQueue() *MemoryActionQueue {
	return &MemoryActionQueue{
		actions: make([]domain.Action, 0),
	}
}

var _ usecases.ActionQueue = (*MemoryActionQueue)(nil)

// MemoryActionQueue is the global FIFO queue shared by every client.
type MemoryActionQueue struct {
	mu      sync.Mutex
	actions []domain.Action
}

func (q *MemoryActionQueue) Enqueue(_ context.Context, action domain.Action) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	action.Params = slices.Clone(action.Params)
	q.actions = append(q.actions, action)
	return nil
}

func (q *MemoryActionQueue) List(_ context.Context) ([]domain.Action, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]domain.Action, len(q.actions))
	for i, action := range q.actions {
		action.Params = slices.Clone(action.Params)
		result[i] = action
	}
	return result, nil
}

func (q *MemoryActionQueue) Remove(_ context.Context, guid string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	index := slices.IndexFunc(q.actions, func(a domain.Action) bool { return a.GUID == guid })
	if index < 0 {
		return usecases.ErrActionNotFound
	}

	q.actions = slices.Delete(q.actions, index, index+1)
	return nil
}
