package persistence

import (
	"context"
	"encoding/json"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/cache"
	"essensys-server/internal/infra/utils"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	_pendingActionsKey        = "exchange:pending_actions"
	_pendingActionsVersionKey = "exchange:pending_actions:version"
)

func NewCachedActionQueue(next usecases.ActionQueue, store cache.Cache, ttl time.Duration) *CachedActionQueue {
	return &CachedActionQueue{
		next:  next,
		store: store,
		ttl:   ttl,
		group: &singleflight.Group{},
	}
}

var _ usecases.ActionQueue = (*CachedActionQueue)(nil)

// CachedActionQueue serves List from a cache. Controllers poll /api/myactions far
// more often than actions change.
//
// The cached list lives under a key derived from a version token that is itself
// stored in the cache. Every write drops the token after touching the queue, so
// a list loaded before the write can only land under a token no reader will ask
// for again. This holds across replicas sharing one Redis.
type CachedActionQueue struct {
	next  usecases.ActionQueue
	store cache.Cache
	ttl   time.Duration
	group *singleflight.Group
}

func (q *CachedActionQueue) Enqueue(ctx context.Context, action domain.Action) error {
	defer q.invalidate(ctx)
	return q.next.Enqueue(ctx, action)
}

func (q *CachedActionQueue) List(ctx context.Context) ([]domain.Action, error) {
	version := q.version(ctx)
	key := _pendingActionsKey + ":" + version

	data, err := cache.GetOrLoad(ctx, q.store, q.group, key, q.ttl, func(ctx context.Context) ([]byte, bool, error) {
		actions, err := q.next.List(ctx)
		if err != nil {
			return nil, false, err
		}
		data, err := json.Marshal(actions)
		if err != nil {
			return nil, false, err
		}
		current, found := q.store.Get(ctx, _pendingActionsVersionKey)
		return data, found && string(current) == version, nil
	})
	if err != nil {
		return nil, err
	}

	var actions []domain.Action
	if err := json.Unmarshal(data, &actions); err != nil {
		slog.Warn("dropping undecodable cached actions", slog.Any("error", err))
		q.invalidate(ctx)
		return q.next.List(ctx)
	}
	if actions == nil {
		actions = []domain.Action{}
	}
	return actions, nil
}

func (q *CachedActionQueue) Remove(ctx context.Context, guid string) error {
	defer q.invalidate(ctx)
	if err := q.next.Remove(ctx, guid); err != nil {
		return fmt.Errorf("removing %s: %w", guid, err)
	}
	return nil
}

// version returns the current token, minting one when none is stored. The token
// is written before the caller loads, so that load observes every write that
// dropped the previous token.
func (q *CachedActionQueue) version(ctx context.Context) string {
	if current, found := q.store.Get(ctx, _pendingActionsVersionKey); found {
		return string(current)
	}
	token := utils.GenerateUUID()
	q.store.Set(ctx, _pendingActionsVersionKey, []byte(token), 0)
	return token
}

func (q *CachedActionQueue) invalidate(ctx context.Context) {
	q.store.Delete(ctx, _pendingActionsVersionKey)
}
