package cache_test

import (
	"context"
	"errors"
	"essensys-server/internal/infra/cache"
	mockcache "essensys-server/test/unit/doubles/infra/cache"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		ctrl   *gomock.Controller
		client *mockcache.MockRedisClient
		store  *cache.RedisCache
		ctx    context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockcache.NewMockRedisClient(ctrl)
		store = cache.NewRedisCacheWithClient(client, "essensys:")
		ctx = context.Background()
	})

	ginkgo.Context("Get", func() {
		ginkgo.It("should return the stored bytes under the prefixed key", func() {
			cmd := redis.NewStringCmd(ctx, "get", "essensys:actions")
			cmd.SetVal(`[{"GUID":"a"}]`)
			client.EXPECT().Get(gomock.Any(), "essensys:actions").Return(cmd)

			value, found := store.Get(ctx, "actions")
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(string(value)).To(gomega.Equal(`[{"GUID":"a"}]`))
		})

		ginkgo.It("should miss on redis.Nil", func() {
			cmd := redis.NewStringCmd(ctx, "get", "essensys:actions")
			cmd.SetErr(redis.Nil)
			client.EXPECT().Get(gomock.Any(), "essensys:actions").Return(cmd)

			_, found := store.Get(ctx, "actions")
			gomega.Expect(found).To(gomega.BeFalse())
		})

		ginkgo.It("should miss when redis fails", func() {
			cmd := redis.NewStringCmd(ctx, "get", "essensys:actions")
			cmd.SetErr(errors.New("connection refused"))
			client.EXPECT().Get(gomock.Any(), "essensys:actions").Return(cmd)

			_, found := store.Get(ctx, "actions")
			gomega.Expect(found).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Set", func() {
		ginkgo.It("should store with the given ttl", func() {
			cmd := redis.NewStatusCmd(ctx)
			cmd.SetVal("OK")
			client.EXPECT().Set(gomock.Any(), "essensys:actions", []byte(`[]`), 2*time.Second).Return(cmd)

			gomega.Expect(store.Set(ctx, "actions", []byte(`[]`), 2*time.Second)).To(gomega.BeTrue())
		})

		ginkgo.It("should report failures", func() {
			cmd := redis.NewStatusCmd(ctx)
			cmd.SetErr(errors.New("READONLY"))
			client.EXPECT().Set(gomock.Any(), "essensys:actions", gomock.Any(), gomock.Any()).Return(cmd)

			gomega.Expect(store.Set(ctx, "actions", []byte(`[]`), time.Second)).To(gomega.BeFalse())
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("should delete the prefixed key", func() {
			client.EXPECT().Del(gomock.Any(), "essensys:actions").Return(redis.NewIntCmd(ctx))

			store.Delete(ctx, "actions")
		})
	})

	ginkgo.Context("Ping", func() {
		ginkgo.It("should surface the client error", func() {
			cmd := redis.NewStatusCmd(ctx)
			cmd.SetErr(errors.New("down"))
			client.EXPECT().Ping(gomock.Any()).Return(cmd)

			gomega.Expect(store.Ping(ctx)).To(gomega.MatchError("down"))
		})
	})
})
