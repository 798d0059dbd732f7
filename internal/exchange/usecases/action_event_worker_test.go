package usecases_test

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/persistence"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/async"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var _ = ginkgo.Describe("ActionEventWorker", func() {
	ginkgo.It("should count action lifecycle events", func() {
		reader := metric.NewManualReader()
		otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(reader)))

		broker := async.NewLocalBroker()
		worker := usecases.NewActionEventWorker(broker)
		service := usecases.NewActionService(persistence.NewMemoryActionQueue(), broker)

		ctx, cancel := context.WithCancel(context.Background())
		finished := make(chan struct{})
		go worker.Run(ctx, func() { close(finished) })

		counted := func() int64 {
			var data metricdata.ResourceMetrics
			gomega.Expect(reader.Collect(context.Background(), &data)).To(gomega.Succeed())
			var total int64
			for _, scope := range data.ScopeMetrics {
				for _, m := range scope.Metrics {
					if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "essensys_server.actions.events" {
						for _, point := range sum.DataPoints {
							total += point.Value
						}
					}
				}
			}
			return total
		}

		// events published before the worker subscribes are dropped
		gomega.Eventually(func() int64 {
			action, err := service.Inject(ctx, "client-1", []domain.ExchangeKV{{K: 615, V: "1"}})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(service.Acknowledge(ctx, "client-1", action.GUID)).To(gomega.Succeed())
			return counted()
		}, time.Second, 20*time.Millisecond).Should(gomega.BeNumerically(">=", 1))

		cancel()
		gomega.Eventually(finished).Should(gomega.BeClosed())
	})
})
