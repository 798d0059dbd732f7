package async_test

import (
	"context"
	"essensys-server/internal/infra/async"
	"sync"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel/sdk/trace"
)

const actionsTopic async.BrokerTopicName = "actions"

var _ = ginkgo.Describe("LocalBroker", func() {
	var (
		broker *async.LocalBroker
		ctx    context.Context
	)

	ginkgo.BeforeEach(func() {
		broker = async.NewLocalBroker()
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		broker.Stop()
	})

	ginkgo.Context("Publish", func() {
		ginkgo.It("should fail for a topic nobody subscribed to", func() {
			err := broker.Publish(ctx, actionsTopic, async.BrokerMessage{Event: "action_enqueued"})
			gomega.Expect(err).To(gomega.MatchError(async.ErrTopicNotFound))
		})

		ginkgo.It("should deliver the event and value to the subscriber", func() {
			subscription, err := broker.Subscribe(actionsTopic)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(broker.Publish(ctx, actionsTopic, async.BrokerMessage{Event: "action_enqueued", Value: "guid-1"})).To(gomega.Succeed())

			gomega.Eventually(subscription.Receiver).Should(gomega.Receive(gomega.And(
				gomega.HaveField("Event", "action_enqueued"),
				gomega.HaveField("Value", "guid-1"),
			)))
		})

		ginkgo.It("should fan out to every subscriber", func() {
			first, _ := broker.Subscribe(actionsTopic)
			second, _ := broker.Subscribe(actionsTopic)

			gomega.Expect(broker.Publish(ctx, actionsTopic, async.BrokerMessage{Event: "action_acknowledged"})).To(gomega.Succeed())

			gomega.Eventually(first.Receiver).Should(gomega.Receive(gomega.HaveField("Event", "action_acknowledged")))
			gomega.Eventually(second.Receiver).Should(gomega.Receive(gomega.HaveField("Event", "action_acknowledged")))
		})

		ginkgo.It("should not cross topics", func() {
			actions, _ := broker.Subscribe(actionsTopic)
			_, _ = broker.Subscribe("status")

			gomega.Expect(broker.Publish(ctx, "status", async.BrokerMessage{Event: "status_updated"})).To(gomega.Succeed())

			gomega.Consistently(actions.Receiver, "50ms").ShouldNot(gomega.Receive())
		})

		ginkgo.It("should keep the topic after its last subscriber left", func() {
			subscription, _ := broker.Subscribe(actionsTopic)
			gomega.Expect(broker.Unsubscribe(actionsTopic, subscription)).To(gomega.Succeed())

			gomega.Expect(broker.Publish(ctx, actionsTopic, async.BrokerMessage{})).To(gomega.Succeed())
		})

		ginkgo.It("should carry the publisher span", func() {
			provider := trace.NewTracerProvider()
			defer func() { _ = provider.Shutdown(ctx) }()
			spanCtx, span := provider.Tracer("broker-test").Start(ctx, "inject")
			defer span.End()

			subscription, _ := broker.Subscribe(actionsTopic)
			gomega.Expect(broker.Publish(spanCtx, actionsTopic, async.BrokerMessage{Event: "action_enqueued"})).To(gomega.Succeed())

			var received async.BrokerMessage
			gomega.Eventually(subscription.Receiver).Should(gomega.Receive(&received))
			gomega.Expect(received.Span.SpanContext().SpanID()).To(gomega.Equal(span.SpanContext().SpanID()))
		})
	})

	ginkgo.Context("Unsubscribe", func() {
		ginkgo.It("should fail for an unknown topic", func() {
			err := broker.Unsubscribe(actionsTopic, async.Subscription{ID: "ghost"})
			gomega.Expect(err).To(gomega.MatchError(async.ErrTopicNotFound))
		})

		ginkgo.It("should fail for an unknown subscription", func() {
			_, _ = broker.Subscribe(actionsTopic)

			err := broker.Unsubscribe(actionsTopic, async.Subscription{ID: "ghost"})
			gomega.Expect(err).To(gomega.MatchError(async.ErrSubscriptorNotFound))
		})

		ginkgo.It("should close the receiver and stop deliveries", func() {
			leaving, _ := broker.Subscribe(actionsTopic)
			staying, _ := broker.Subscribe(actionsTopic)

			gomega.Expect(broker.Unsubscribe(actionsTopic, leaving)).To(gomega.Succeed())
			gomega.Eventually(leaving.Receiver).Should(gomega.BeClosed())

			gomega.Expect(broker.Publish(ctx, actionsTopic, async.BrokerMessage{Event: "action_enqueued"})).To(gomega.Succeed())
			gomega.Eventually(staying.Receiver).Should(gomega.Receive())
		})

		ginkgo.It("should report a second call for the same subscription", func() {
			subscription, _ := broker.Subscribe(actionsTopic)

			gomega.Expect(broker.Unsubscribe(actionsTopic, subscription)).To(gomega.Succeed())
			err := broker.Unsubscribe(actionsTopic, subscription)
			gomega.Expect(err).To(gomega.MatchError(async.ErrSubscriptorNotFound))
		})

		ginkgo.It("should not panic with deliveries in flight", func() {
			subscription, _ := broker.Subscribe(actionsTopic)

			var wg sync.WaitGroup
			for range 20 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = broker.Publish(ctx, actionsTopic, async.BrokerMessage{Event: "action_enqueued"})
				}()
			}

			gomega.Expect(func() {
				_ = broker.Unsubscribe(actionsTopic, subscription)
			}).NotTo(gomega.Panic())
			wg.Wait()
		})
	})

	ginkgo.Context("Stop", func() {
		ginkgo.It("should close every receiver and forget the topics", func() {
			first, _ := broker.Subscribe(actionsTopic)
			second, _ := broker.Subscribe("status")

			broker.Stop()

			gomega.Eventually(first.Receiver).Should(gomega.BeClosed())
			gomega.Eventually(second.Receiver).Should(gomega.BeClosed())
			err := broker.Publish(ctx, actionsTopic, async.BrokerMessage{})
			gomega.Expect(err).To(gomega.MatchError(async.ErrTopicNotFound))
		})

		ginkgo.It("should be safe to call twice", func() {
			_, _ = broker.Subscribe(actionsTopic)

			broker.Stop()
			gomega.Expect(broker.Stop).NotTo(gomega.Panic())
		})
	})
})
