package usecases_test

import (
	"context"
	"errors"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/async"
	mockusecases "essensys-server/test/unit/doubles/exchange/usecases"
	mockasync "essensys-server/test/unit/doubles/infra/async"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("ActionService", func() {
	var (
		ctrl       *gomock.Controller
		mockQueue  *mockusecases.MockActionQueue
		mockBroker *mockasync.MockInternalBroker
		service    *usecases.SimpleActionService
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		mockQueue = mockusecases.NewMockActionQueue(ctrl)
		mockBroker = mockasync.NewMockInternalBroker(ctrl)
		service = usecases.NewActionService(mockQueue, mockBroker)
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	ginkgo.Context("Inject", func() {
		ginkgo.It("should enqueue the complete block and publish an event", func() {
			var enqueued domain.Action
			mockQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, action domain.Action) error {
					enqueued = action
					return nil
				})
			mockBroker.EXPECT().Publish(gomock.Any(), usecases.ActionsTopic, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ async.BrokerTopicName, msg async.BrokerMessage) error {
					gomega.Expect(msg.Event).To(gomega.Equal(usecases.EventActionEnqueued))
					event := msg.Value.(usecases.ActionEvent)
					gomega.Expect(event.ClientID).To(gomega.Equal("client-1"))
					gomega.Expect(event.Action.GUID).To(gomega.Equal(enqueued.GUID))
					return nil
				})

			action, err := service.Inject(ctx, "client-1", []domain.ExchangeKV{{K: 615, V: "1"}})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(action.GUID).To(gomega.Equal(enqueued.GUID))
			gomega.Expect(action.Params).To(gomega.ContainElements(
				domain.ExchangeKV{K: 590, V: "1"},
				domain.ExchangeKV{K: 605, V: "0"},
			))
		})

		ginkgo.It("should not fail when nobody listens to action events", func() {
			mockQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
			mockBroker.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(async.ErrTopicNotFound)

			_, err := service.Inject(ctx, "client-1", []domain.ExchangeKV{{K: 349, V: "1"}})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should reject invalid params before touching the queue", func() {
			_, err := service.Inject(ctx, "client-1", []domain.ExchangeKV{{K: -1, V: "1"}})
			gomega.Expect(err).To(gomega.MatchError(domain.ErrIndexOutOfRange))

			_, err = service.Inject(ctx, "client-1", nil)
			gomega.Expect(err).To(gomega.MatchError(domain.ErrEmptyParams))
		})

		ginkgo.It("should surface queue failures", func() {
			mockQueue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

			_, err := service.Inject(ctx, "client-1", []domain.ExchangeKV{{K: 349, V: "1"}})
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("enqueueing action")))
		})
	})

	ginkgo.Context("Pending", func() {
		ginkgo.It("should list the queue", func() {
			pending := []domain.Action{{GUID: "a"}, {GUID: "b"}}
			mockQueue.EXPECT().List(gomock.Any()).Return(pending, nil)

			actions, err := service.Pending(ctx, "client-1")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(actions).To(gomega.Equal(pending))
		})
	})

	ginkgo.Context("Acknowledge", func() {
		ginkgo.It("should remove the action and publish an event", func() {
			mockQueue.EXPECT().Remove(gomock.Any(), "guid-1").Return(nil)
			mockBroker.EXPECT().Publish(gomock.Any(), usecases.ActionsTopic, gomock.Any()).Return(nil)

			gomega.Expect(service.Acknowledge(ctx, "client-1", "guid-1")).To(gomega.Succeed())
		})

		ginkgo.It("should return ErrActionNotFound for unknown guids", func() {
			mockQueue.EXPECT().Remove(gomock.Any(), "guid-1").Return(usecases.ErrActionNotFound)

			err := service.Acknowledge(ctx, "client-1", "guid-1")
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrActionNotFound))
		})

		ginkgo.It("should require a guid", func() {
			err := service.Acknowledge(ctx, "client-1", "")
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrInvalidGUID))
		})
	})
})
