package usecases

import (
	"context"
	"essensys-server/internal/exchange/domain"
)

//go:generate mockgen -source=api.go -destination=../../../test/unit/doubles/exchange/usecases/api_mock.go -package=usecases

type ActionService interface {
	Inject(ctx context.Context, clientID string, params []domain.ExchangeKV) (domain.Action, error)
	Pending(ctx context.Context, clientID string) ([]domain.Action, error)
	Acknowledge(ctx context.Context, clientID string, guid string) error
}

type StatusService interface {
	Update(ctx context.Context, clientID string, report domain.StatusReport) error
	Snapshot(ctx context.Context, clientID string, indices []domain.Index) (domain.ClientSnapshot, error)
}

type ServerInfoService interface {
	Get(ctx context.Context, clientID string) (domain.ServerInfo, error)
}
