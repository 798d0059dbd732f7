package usecases

import (
	"context"
	"errors"
	"essensys-server/internal/exchange/domain"
	"time"
)

//go:generate mockgen -source=repository_port.go -destination=../../../test/unit/doubles/exchange/usecases/repository_port_mock.go -package=usecases -mock_names=ActionQueue=MockActionQueue,ExchangeTable=MockExchangeTable,ClientRegistry=MockClientRegistry

var (
	ErrActionNotFound = errors.New("action not found")
	ErrInvalidGUID    = errors.New("guid is required")
)

// ActionQueue is the single authority over pending actions. List must not remove
// anything; only Remove does.
type ActionQueue interface {
	Enqueue(context.Context, domain.Action) error
	List(context.Context) ([]domain.Action, error)
	Remove(ctx context.Context, guid string) error
}

type ExchangeTable interface {
	Set(ctx context.Context, clientID string, kv domain.ExchangeKV) error
	Get(ctx context.Context, clientID string, index domain.Index) (string, bool, error)
	GetAll(ctx context.Context, clientID string, indices []domain.Index) ([]domain.ExchangeKV, error)
}

type ClientRegistry interface {
	Touch(ctx context.Context, clientID string, at time.Time) error
	IsConnected(ctx context.Context, clientID string) (bool, error)
	MarkStale(ctx context.Context, olderThan time.Time) ([]string, error)
}
