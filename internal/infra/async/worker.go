package async

import (
	"context"
	"log/slog"
	"sync"
)

type Worker interface {
	Run(context.Context, func())
	Shutdown()
}

// RunWorkers starts every worker and returns a function that blocks until
// all of them have returned from Run.
func RunWorkers(ctx context.Context, workers ...Worker) (wait func()) {
	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go w.Run(ctx, wg.Done)
	}
	slog.Debug("workers started", slog.Int("count", len(workers)))
	return wg.Wait
}

// ShutdownWorkers calls Shutdown on every worker in reverse start order.
func ShutdownWorkers(workers ...Worker) {
	for i := len(workers) - 1; i >= 0; i-- {
		workers[i].Shutdown()
	}
}
