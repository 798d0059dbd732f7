package usecases

import (
	"context"
	"essensys-server/internal/infra/async"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const _defaultStaleAfter = 5 * time.Minute

func NewConnectionSweeper(schedule string, staleAfter time.Duration, registry ClientRegistry) (*ConnectionSweeper, error) {
	if staleAfter <= 0 {
		staleAfter = _defaultStaleAfter
	}

	disconnected, err := otel.Meter("essensys_server").Int64Counter(
		fmt.Sprintf("%s.%s", "essensys_server", "clients.disconnected"),
		metric.WithDescription("essensys_server clients flagged as disconnected by the sweeper"),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}

	sweeper := &ConnectionSweeper{
		registry:     registry,
		staleAfter:   staleAfter,
		scheduler:    cron.New(),
		now:          time.Now,
		disconnected: disconnected,
	}

	_, err = sweeper.scheduler.AddFunc(schedule, func() {
		sweeper.Sweep(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("parsing sweep schedule %q: %w", schedule, err)
	}

	return sweeper, nil
}

var _ async.Worker = &ConnectionSweeper{}

// ConnectionSweeper flags clients as disconnected once they stop reporting status.
type ConnectionSweeper struct {
	registry     ClientRegistry
	staleAfter   time.Duration
	scheduler    *cron.Cron
	now          func() time.Time
	disconnected metric.Int64Counter
}

func (w *ConnectionSweeper) Run(ctx context.Context, done func()) {
	slog.Debug("connection sweeper started", slog.Duration("stale_after", w.staleAfter))
	defer done()

	w.scheduler.Start()
	<-ctx.Done()
	w.Shutdown()
	slog.Info("connection sweeper cancelled")
}

func (w *ConnectionSweeper) Shutdown() {
	<-w.scheduler.Stop().Done()
}

func (w *ConnectionSweeper) Sweep(ctx context.Context) []string {
	stale, err := w.registry.MarkStale(ctx, w.now().Add(-w.staleAfter))
	if err != nil {
		slog.Error("marking stale clients", slog.Any("error", err))
		return nil
	}

	for _, clientID := range stale {
		slog.Info("client disconnected", slog.String("client_id", clientID))
	}
	if len(stale) > 0 {
		w.disconnected.Add(ctx, int64(len(stale)))
	}
	return stale
}
