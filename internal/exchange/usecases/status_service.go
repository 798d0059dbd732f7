package usecases

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"fmt"
	"log/slog"
	"time"
)

func NewStatusService(table ExchangeTable, registry ClientRegistry) *SimpleStatusService {
	return &SimpleStatusService{
		table:    table,
		registry: registry,
		now:      time.Now,
	}
}

var _ StatusService = (*SimpleStatusService)(nil)

type SimpleStatusService struct {
	table    ExchangeTable
	registry ClientRegistry
	now      func() time.Time
}

func (s *SimpleStatusService) Update(ctx context.Context, clientID string, report domain.StatusReport) error {
	for _, kv := range report.EK {
		if err := s.table.Set(ctx, clientID, kv); err != nil {
			return fmt.Errorf("storing index %d: %w", kv.K, err)
		}
	}

	if err := s.registry.Touch(ctx, clientID, s.now()); err != nil {
		return fmt.Errorf("marking client connected: %w", err)
	}

	slog.Info("status update",
		slog.String("client_id", clientID),
		slog.String("version", report.Version),
		slog.Int("items", len(report.EK)))
	return nil
}

// Snapshot reads the connection flag and the stored values of indices. An empty
// indices reads the whole table.
func (s *SimpleStatusService) Snapshot(ctx context.Context, clientID string, indices []domain.Index) (domain.ClientSnapshot, error) {
	connected, err := s.registry.IsConnected(ctx, clientID)
	if err != nil {
		return domain.ClientSnapshot{}, fmt.Errorf("reading connection state: %w", err)
	}

	if len(indices) == 0 {
		indices = allIndices()
	}
	for _, index := range indices {
		if err := index.Validate(); err != nil {
			return domain.ClientSnapshot{}, err
		}
	}

	values, err := s.table.GetAll(ctx, clientID, indices)
	if err != nil {
		return domain.ClientSnapshot{}, fmt.Errorf("reading exchange table: %w", err)
	}

	return domain.ClientSnapshot{ClientID: clientID, Connected: connected, Values: values}, nil
}

func allIndices() []domain.Index {
	indices := make([]domain.Index, 0, domain.MaxExchangeIndex+1)
	for i := domain.Index(0); i <= domain.MaxExchangeIndex; i++ {
		indices = append(indices, i)
	}
	return indices
}
