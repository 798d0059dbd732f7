package persistence_test

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/persistence"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MemoryExchangeTable", func() {
	var (
		table *persistence.MemoryExchangeTable
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		table = persistence.NewMemoryExchangeTable()
		ctx = context.Background()
	})

	ginkgo.It("should keep values per client", func() {
		gomega.Expect(table.Set(ctx, "a", domain.ExchangeKV{K: 349, V: "1"})).To(gomega.Succeed())
		gomega.Expect(table.Set(ctx, "b", domain.ExchangeKV{K: 349, V: "2"})).To(gomega.Succeed())

		value, ok, err := table.Get(ctx, "a", 349)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(value).To(gomega.Equal("1"))

		_, ok, _ = table.Get(ctx, "c", 349)
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should return known values in the requested order", func() {
		gomega.Expect(table.Set(ctx, "a", domain.ExchangeKV{K: 350, V: "x"})).To(gomega.Succeed())
		gomega.Expect(table.Set(ctx, "a", domain.ExchangeKV{K: 349, V: "y"})).To(gomega.Succeed())

		values, err := table.GetAll(ctx, "a", []domain.Index{349, 999, 350})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(values).To(gomega.Equal([]domain.ExchangeKV{{K: 349, V: "y"}, {K: 350, V: "x"}}))
	})
})

var _ = ginkgo.Describe("MemoryClientRegistry", func() {
	var (
		registry *persistence.MemoryClientRegistry
		ctx      context.Context
		now      time.Time
	)

	ginkgo.BeforeEach(func() {
		registry = persistence.NewMemoryClientRegistry()
		ctx = context.Background()
		now = time.Now()
	})

	ginkgo.It("should report unknown clients as disconnected", func() {
		connected, err := registry.IsConnected(ctx, "ghost")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(connected).To(gomega.BeFalse())
	})

	ginkgo.It("should mark only stale clients", func() {
		gomega.Expect(registry.Touch(ctx, "old", now.Add(-10*time.Minute))).To(gomega.Succeed())
		gomega.Expect(registry.Touch(ctx, "fresh", now)).To(gomega.Succeed())

		stale, err := registry.MarkStale(ctx, now.Add(-5*time.Minute))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(stale).To(gomega.Equal([]string{"old"}))

		connected, _ := registry.IsConnected(ctx, "old")
		gomega.Expect(connected).To(gomega.BeFalse())
		connected, _ = registry.IsConnected(ctx, "fresh")
		gomega.Expect(connected).To(gomega.BeTrue())

		stale, _ = registry.MarkStale(ctx, now.Add(-5*time.Minute))
		gomega.Expect(stale).To(gomega.BeEmpty())
	})
})
