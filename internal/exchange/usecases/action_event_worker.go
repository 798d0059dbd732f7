package usecases

import (
	"context"
	"essensys-server/internal/infra/async"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func NewActionEventWorker(broker async.InternalBroker) *ActionEventWorker {
	return &ActionEventWorker{broker: broker}
}

var _ async.Worker = &ActionEventWorker{}

// ActionEventWorker turns action lifecycle events into metrics and audit logs.
type ActionEventWorker struct {
	broker  async.InternalBroker
	counter metric.Int64Counter
}

func (w *ActionEventWorker) Run(ctx context.Context, done func()) {
	slog.Debug("action event worker run with context initialized")
	defer done()

	subscription, err := w.broker.Subscribe(ActionsTopic)
	if err != nil {
		slog.Error("subscribing to actions topic", slog.Any("error", err))
		return
	}

	w.counter, err = otel.Meter("essensys_server").Int64Counter(
		fmt.Sprintf("%s.%s", "essensys_server", "actions.events"),
		metric.WithDescription("essensys_server action lifecycle events"),
	)
	if err != nil {
		slog.Error("initializing metrics", slog.Any("error", err))
		return
	}

	var wg sync.WaitGroup
	for {
		select {
		case <-ctx.Done():
			slog.Info("action event worker cancelled")
			wg.Wait()
			_ = w.broker.Unsubscribe(ActionsTopic, subscription)
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				wg.Wait()
				return
			}
			wg.Add(1)
			w.handle(ctx, msg, wg.Done)
		}
	}
}

func (w *ActionEventWorker) Shutdown() {
	slog.Debug("action event worker shutdown")
}

func (w *ActionEventWorker) handle(ctx context.Context, msg async.BrokerMessage, done func()) {
	defer done()

	event, ok := msg.Value.(ActionEvent)
	if !ok {
		slog.Error("failed to cast action event",
			slog.String("type", fmt.Sprintf("%T", msg.Value)),
			slog.String("expected", "usecases.ActionEvent"))
		return
	}

	slog.Info(msg.Event,
		slog.String("client_id", event.ClientID),
		slog.String("guid", event.Action.GUID),
		slog.Int("params", len(event.Action.Params)))

	w.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", msg.Event),
		attribute.String("client_id", event.ClientID),
	))
}
