package usecases

import (
	"context"
	"errors"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/infra/async"
	"fmt"
	"log/slog"
)

const ActionsTopic async.BrokerTopicName = "actions"

const (
	EventActionEnqueued     = "action_enqueued"
	EventActionAcknowledged = "action_acknowledged"
)

// ActionEvent is the broker payload for action lifecycle events.
type ActionEvent struct {
	ClientID string
	Action   domain.Action
}

func NewActionService(queue ActionQueue, broker async.InternalBroker) *SimpleActionService {
	return &SimpleActionService{
		queue:  queue,
		broker: broker,
	}
}

var _ ActionService = (*SimpleActionService)(nil)

type SimpleActionService struct {
	queue  ActionQueue
	broker async.InternalBroker
}

func (s *SimpleActionService) Inject(ctx context.Context, clientID string, params []domain.ExchangeKV) (domain.Action, error) {
	action, err := domain.NewActionBuilder().
		WithParams(params).
		Build()
	if err != nil {
		return domain.Action{}, fmt.Errorf("building action: %w", err)
	}

	if err := s.queue.Enqueue(ctx, action); err != nil {
		return domain.Action{}, fmt.Errorf("enqueueing action: %w", err)
	}

	s.publish(ctx, EventActionEnqueued, ActionEvent{ClientID: clientID, Action: action})
	return action, nil
}

func (s *SimpleActionService) Pending(ctx context.Context, _ string) ([]domain.Action, error) {
	actions, err := s.queue.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	return actions, nil
}

func (s *SimpleActionService) Acknowledge(ctx context.Context, clientID string, guid string) error {
	if guid == "" {
		return ErrInvalidGUID
	}

	err := s.queue.Remove(ctx, guid)
	if errors.Is(err, ErrActionNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("removing action: %w", err)
	}

	s.publish(ctx, EventActionAcknowledged, ActionEvent{ClientID: clientID, Action: domain.Action{GUID: guid}})
	return nil
}

func (s *SimpleActionService) publish(ctx context.Context, event string, value ActionEvent) {
	if s.broker == nil {
		return
	}

	err := s.broker.Publish(ctx, ActionsTopic, async.BrokerMessage{Event: event, Value: value})
	if errors.Is(err, async.ErrTopicNotFound) {
		slog.Debug("no subscribers for actions topic", slog.String("event", event))
		return
	}
	if err != nil {
		slog.Warn("publishing action event", slog.String("event", event), slog.Any("error", err))
	}
}
